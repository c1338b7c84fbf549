package usecase

import (
	"context"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// GoodUsecase は公開ストアの商品一覧・詳細。
type GoodUsecase struct {
	goods repo.GoodRepository
}

func NewGoodUsecase(goods repo.GoodRepository) *GoodUsecase {
	return &GoodUsecase{goods: goods}
}

func (u *GoodUsecase) ListGoods(ctx context.Context) ([]model.Good, error) {
	ctx, cancel := repoContext(ctx)
	defer cancel()

	goods, err := u.goods.ListActive(ctx)
	if err != nil {
		return []model.Good{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return goods, nil
}

func (u *GoodUsecase) GetGood(ctx context.Context, goodID int64) (model.Good, error) {
	if goodID <= 0 {
		return model.Good{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := repoContext(ctx)
	defer cancel()

	g, err := u.goods.FindByID(ctx, goodID)
	if err == repo.ErrNotFound {
		return model.Good{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Good{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !g.IsActive {
		return model.Good{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return g, nil
}
