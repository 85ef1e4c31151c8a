package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationMessages превращает ошибки валидатора в список сообщений
// для поля errors конверта ответа
func validationMessages(err error) []string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) == false {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fmt.Sprintf("поле %s не прошло проверку '%s'", fieldErr.Field(), fieldErr.Tag()))
	}

	return messages
}
