package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

type WebhookNotify struct {
	UserUUID  string `json:"userUUID"`
	IpAddress string `json:"ipAddress"`
	Event     string `json:"event"`
	TimeStamp string `json:"timeStamp"`
}

// Webhook отправляет события безопасности на внешний URL.
// Пустой URL отключает отправку
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// NotifyTokenReuse сообщает о предъявлении отозванного или вытесненного
// ротацией рефреш токена
func (webhook *Webhook) NotifyTokenReuse(userUUID string, ipAddress string) error {
	if webhook.url == "" {
		return nil
	}

	payload := &WebhookNotify{
		UserUUID:  userUUID,
		IpAddress: ipAddress,
		Event:     "refresh_token_reuse_detected",
		TimeStamp: time.Now().Format(time.RFC3339),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка преобразования в json: %w", err)
	}

	response, err := webhook.client.Post(webhook.url, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("ошибка отправки webhook: %w", err)
	}
	defer response.Body.Close()

	log.Print("webhook успешно отправлен")
	return nil
}
