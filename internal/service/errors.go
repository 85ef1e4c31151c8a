package service

import "errors"

var (
	// ErrInvalidCredentials — неверная пара email/пароль; сообщение
	// одинаковое для обоих случаев, чтобы не раскрывать существование email
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	// ErrEmailAlreadyExists — регистрация на занятый email
	ErrEmailAlreadyExists = errors.New("пользователь с таким email уже существует")
	// ErrCategoryAlreadyExists — категория с таким именем уже есть
	ErrCategoryAlreadyExists = errors.New("категория с таким именем уже существует")
	// ErrNotFound — ресурс не найден или принадлежит другому пользователю
	ErrNotFound = errors.New("ресурс не найден")
)
