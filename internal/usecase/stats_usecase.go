package usecase

import (
	"context"
	"log/slog"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

// StatsUsecase はダッシュボード数値を注文一覧から毎回計算する。
// 集計テーブルは持たない（正とズレようがない）。
type StatsUsecase struct {
	orders repo.OrderRepository
	users  repo.UserRepository
	log    *slog.Logger
}

func NewStatsUsecase(orders repo.OrderRepository, users repo.UserRepository, log *slog.Logger) *StatsUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &StatsUsecase{orders: orders, users: users, log: log}
}

type StatsOutput struct {
	// paid + delivered の合計金額。pending / cancelled は含めない。
	TotalSales   decimal.Decimal `json:"total_sales"`
	PendingCount int64           `json:"pending_count"`
	// deliveredも「支払い済み」として数える（配達は入金後にしか起きない）
	PaidCount int64 `json:"paid_count"`
}

// ComputeStats は取得失敗時にゼロ値へ落とす（ダッシュボードは参考値）。
func (u *StatsUsecase) ComputeStats(ctx context.Context, actorUserID int64) (StatsOutput, error) {
	ctx, cancel := repoContext(ctx)
	defer cancel()

	if actorUserID <= 0 {
		return StatsOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return StatsOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return StatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user.Role != model.RoleAdmin {
		return StatsOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	zero := StatsOutput{TotalSales: decimal.Zero}

	orders, err := u.orders.ListAll(ctx, "")
	if err != nil {
		u.log.Warn("stats listing failed, returning zeroed stats", "error", err)
		return zero, nil
	}

	out := zero
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			out.PendingCount++
		case model.OrderStatusPaid, model.OrderStatusDelivered:
			out.PaidCount++
			out.TotalSales = out.TotalSales.Add(o.TotalAmount)
		}
	}
	return out, nil
}
