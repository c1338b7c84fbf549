package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	// 新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	// 管理者用。status空なら全件、新しい順
	ListAll(ctx context.Context, status string) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) error
	// statusだけを更新する（items/total_amount/nicknameは触らない）
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
