package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"shop/internal/cartstore"
	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/google/uuid"
)

// CheckoutUsecase はカート→注文への一方通行の変換点。
type CheckoutUsecase struct {
	orders repo.OrderRepository
	users  repo.UserRepository
	log    *slog.Logger
}

func NewCheckoutUsecase(orders repo.OrderRepository, users repo.UserRepository, log *slog.Logger) *CheckoutUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &CheckoutUsecase{orders: orders, users: users, log: log}
}

// Checkout はカート内容を注文として確定する。
// 作成が成功するまでカートはクリアしない（逆順は失敗時に中身が消えるので不可）。
// 失敗時はカートを無傷で残してリトライ可能にする。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, cart *cartstore.Store, nickname string) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	rctx, cancel := repoContext(ctx)
	defer cancel()

	user, err := u.users.FindByID(rctx, userID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := cart.Items(ctx)
	if len(items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	// 未指定ならプロフィールのデフォルトキャラ名
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = cart.Nickname(ctx)
	}
	if nickname == "" {
		nickname = user.Nickname
	}

	//確定時点のスナップショット（以後カタログが変わっても注文は不変）
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, model.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	order := model.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Nickname:    nickname,
		Items:       orderItems,
		TotalAmount: cart.TotalPrice(ctx),
		Status:      model.OrderStatusPending,
		CreatedAt:   time.Now(),
	}

	// 1行のINSERTなので中途半端な状態は起きない
	if err := u.orders.Create(rctx, order); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 作成が確定してからクリア
	cart.Clear(ctx)

	u.log.Info("order created",
		"order_id", order.ID, "user_id", userID, "total", order.TotalAmount.String())

	return toOrderOutput(order), nil
}
