package service

import (
	"context"
	"time"
)

// storeTimeout ограничивает каждый запрос к хранилищу: зависшее соединение
// превращается в ErrUnavailable, а не в бесконечное ожидание.
const storeTimeout = 5 * time.Second

func storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}
