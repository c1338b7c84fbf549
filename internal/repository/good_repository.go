package repository

import (
	"context"

	"shop/internal/domain/model"
)

type GoodRepository interface {
	FindByID(ctx context.Context, goodID int64) (model.Good, error)
	// 公開中のみ
	ListActive(ctx context.Context) ([]model.Good, error)
}
