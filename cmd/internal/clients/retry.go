package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	retryAttempts = 3
	retryDelay    = time.Second
)

// statusError — не-200 ответ внешнего сервиса. Повторяются только 5xx;
// 4xx отдается вызывающей стороне сразу и деградирует до пустого
// результата.
type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("внешний сервис вернул статус %d", e.Code)
}

// transportError — сетевая ошибка, всегда подлежит повтору.
type transportError struct {
	Err error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("сетевая ошибка: %v", e.Err)
}

func (e *transportError) Unwrap() error {
	return e.Err
}

func isRetryable(err error) bool {
	var status *statusError
	if errors.As(err, &status) {
		return status.Code >= 500
	}
	var transport *transportError
	return errors.As(err, &transport)
}

// IsDegraded сообщает, что ответ был 4xx: повторять бессмысленно,
// результат считается пустым.
func IsDegraded(err error) bool {
	var status *statusError
	return errors.As(err, &status) && status.Code >= 400 && status.Code < 500
}

// doWithRetry — общая политика повторов всех внешних клиентов:
// фиксированное число попыток с постоянной задержкой, повтор только для
// сетевых ошибок и 5xx.
func doWithRetry(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt < retryAttempts-1 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

// postJSON выполняет POST с JSON-телом и декодирует JSON-ответ в out.
func postJSON(ctx context.Context, client *http.Client, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("кодирование запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &transportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &statusError{Code: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа: %w", err)
	}
	return nil
}
