package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify отправляет событие в NotifyService
func (c *Client) Notify(ctx context.Context, event Event, userID, entityID int64, message string) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(notifyRequest{
		Event:    event,
		UserID:   userID,
		EntityID: entityID,
		Message:  message,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// NotifyAsync отправляет событие fire-and-forget: недоступность NotifyService
// не должна влиять на бизнес-операцию, ошибка только логируется
func (c *Client) NotifyAsync(event Event, userID, entityID int64, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Notify(ctx, event, userID, entityID, message); err != nil {
			c.log.Error("NotifyService unavailable, event %s for user %d dropped: %v", event, userID, err)
			return
		}

		c.log.Info("Notification %s sent for user %d, entity %d", event, userID, entityID)
	}()
}
