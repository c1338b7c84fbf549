package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	users  repo.UserRepository
	log    *slog.Logger
}

func NewAdminOrderUsecase(orders repo.OrderRepository, users repo.UserRepository, log *slog.Logger) *AdminOrderUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &AdminOrderUsecase{orders: orders, users: users, log: log}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// ロールは毎回DBから引き直す（セッション中の降格を即反映させるため）。
func (u *AdminOrderUsecase) authorize(ctx context.Context, actorUserID int64) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user.Role != model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

// 注文一覧（全ユーザー、新しい順）
func (u *AdminOrderUsecase) List(ctx context.Context, actorUserID int64, status string) ([]OrderOutput, error) {
	ctx, cancel := repoContext(ctx)
	defer cancel()

	if err := u.authorize(ctx, actorUserID); err != nil {
		return []OrderOutput{}, err
	}

	if status != "" && !model.OrderStatus(status).Valid() {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, err := u.orders.ListAll(ctx, status)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

// ステータス更新。遷移テーブルに無い組み合わせはデータ層の手前で拒否する。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID string, in AdminUpdateOrderStatusInput) error {
	if !validOrderID(orderID) {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	ctx, cancel := repoContext(ctx)
	defer cancel()

	if err := u.authorize(ctx, actorUserID); err != nil {
		return err
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// すでに同じなら何もしない（200）
	if o.Status == newStatus {
		return nil
	}
	if !model.CanTransition(o.Status, newStatus) {
		return NewHTTPError(http.StatusBadRequest, "illegal transition")
	}

	// statusだけの更新。items/total_amount/nicknameは触らない。
	if err := u.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.Info("order status updated",
		"order_id", orderID,
		"from", string(o.Status),
		"to", string(newStatus),
		"actor_user_id", actorUserID)

	return nil
}
