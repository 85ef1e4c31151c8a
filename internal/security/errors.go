package security

import "errors"

// Закрытый набор ошибок аутентификации. Middleware и обработчики
// различают их через errors.Is и подбирают статус и сообщение ответа
var (
	// ErrNoToken — заголовок Authorization отсутствует или без префикса Bearer
	ErrNoToken = errors.New("отсутствует токен авторизации")
	// ErrTokenExpired — подпись верна, но срок действия токена истек
	ErrTokenExpired = errors.New("токен просрочен")
	// ErrTokenInvalid — битый токен, неверная подпись или чужой секрет
	ErrTokenInvalid = errors.New("невалидный токен")
	// ErrUserNotFound — субъект токена не найден в БД
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrRefreshTokenInvalid — рефреш токен не совпал с сохраненным
	// значением (отозван при logout или вытеснен ротацией)
	ErrRefreshTokenInvalid = errors.New("невалидный рефреш токен")
	// ErrRefreshTokenExpired — срок действия рефреш токена истек
	ErrRefreshTokenExpired = errors.New("рефреш токен просрочен")
)
