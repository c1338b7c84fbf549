package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// Repository呼び出しの上限。超過は500扱いでクライアント状態は触らない。
const repoTimeout = 5 * time.Second

func repoContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, repoTimeout)
}
