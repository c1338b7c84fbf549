package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListMyOrders_Unauthorized(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderRepoMock))

	outs, err := uc.ListMyOrders(context.Background(), 0)
	assert.Equal(t, 0, len(outs))
	assertErrContains(t, err, "unauthorized")
}

func TestListMyOrders_ReturnsOwnOrders(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{
		{
			ID:          orderID,
			UserID:      1,
			Nickname:    "Steve",
			Status:      model.OrderStatusPending,
			TotalAmount: decimal.RequireFromString("29.90"),
			Items: []model.OrderItem{
				{ID: 1, Name: "VIP", Price: decimal.RequireFromString("29.90"), Quantity: 1},
			},
		},
	}, nil)

	uc := usecase.NewOrderUsecase(orders)

	outs, err := uc.ListMyOrders(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.Equal(t, "pending", outs[0].Status)
	assert.Equal(t, "Steve", outs[0].Nickname)
	assert.True(t, outs[0].TotalAmount.Equal(decimal.RequireFromString("29.90")))
	assert.Equal(t, 1, len(outs[0].Items))
	assert.Equal(t, "VIP", outs[0].Items[0].Name)
}

func TestGetMyOrderDetail_InvalidID(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderRepoMock))

	_, err := uc.GetMyOrderDetail(context.Background(), 1, "not-a-uuid")
	assertErrContains(t, err, "invalid id")
}

func TestGetMyOrderDetail_NotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, orderID).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(orders)

	_, err := uc.GetMyOrderDetail(context.Background(), 1, orderID)
	assertErrContains(t, err, "not found")
}

func TestGetMyOrderDetail_ForeignOrderHidden(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, UserID: 2}, nil)

	uc := usecase.NewOrderUsecase(orders)

	//他人の注文は404（403で存在を漏らさない）
	_, err := uc.GetMyOrderDetail(context.Background(), 1, orderID)
	assertErrContains(t, err, "not found")
}
