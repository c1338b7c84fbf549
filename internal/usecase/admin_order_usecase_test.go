package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const orderID = "1b4e28ba-2fa1-11d2-883f-b9a761bde3fb"

func adminUser() *model.User {
	return &model.User{ID: 9, Role: model.RoleAdmin}
}

// =====================
// UpdateStatus tests
// =====================

func TestAdminUpdateStatus_InvalidOrderID(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(new(OrderRepoMock), new(UserRepoMock), nil)

	err := uc.UpdateStatus(context.Background(), 9, "abc", usecase.AdminUpdateOrderStatusInput{Status: "paid"})
	assertErrContains(t, err, "invalid id")
}

func TestAdminUpdateStatus_InvalidStatus(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(new(OrderRepoMock), new(UserRepoMock), nil)

	err := uc.UpdateStatus(context.Background(), 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "invalid status")
}

func TestAdminUpdateStatus_ForbiddenForNonAdmin(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	//注文の持ち主であってもUSERは遷移できない
	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Role: model.RoleUser}, nil)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	err := uc.UpdateStatus(context.Background(), 2, orderID, usecase.AdminUpdateOrderStatusInput{Status: "paid"})
	assertErrContains(t, err, "forbidden")

	//statusは書き換わらない
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_RoleIsRecheckedEveryCall(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)

	//1回目はADMIN、2回目はUSERに降格している
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil).Once()
	users.On("FindByID", mock.Anything, int64(9)).Return(&model.User{ID: 9, Role: model.RoleUser}, nil).Once()

	orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending}, nil).Once()
	orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusPaid).Return(nil).Once()

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	err := uc.UpdateStatus(ctx, 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "paid"})
	assert.NoError(t, err)

	//降格は次の呼び出しで即効く
	err = uc.UpdateStatus(ctx, 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "delivered"})
	assertErrContains(t, err, "forbidden")

	users.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestAdminUpdateStatus_NotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil)
	orders.On("FindByID", mock.Anything, orderID).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	err := uc.UpdateStatus(context.Background(), 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "paid"})
	assertErrContains(t, err, "not found")
}

func TestAdminUpdateStatus_SameStatusNoOp(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil)
	orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPaid}, nil)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	err := uc.UpdateStatus(context.Background(), 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "paid"})
	assert.NoError(t, err)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_RejectsPendingToDelivered(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil)
	orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending}, nil)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	//配達は必ず入金後
	err := uc.UpdateStatus(context.Background(), 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "delivered"})
	assertErrContains(t, err, "illegal transition")
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_RejectsBackwardFromTerminal(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil)
	orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusDelivered}, nil)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	err := uc.UpdateStatus(context.Background(), 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "paid"})
	assertErrContains(t, err, "illegal transition")
}

func TestAdminUpdateStatus_LegalChainSucceeds(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil)

	// pending -> paid -> delivered
	orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending}, nil).Once()
	orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusPaid).Return(nil).Once()
	orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPaid}, nil).Once()
	orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusDelivered).Return(nil).Once()

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	assert.NoError(t, uc.UpdateStatus(ctx, 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "paid"}))
	assert.NoError(t, uc.UpdateStatus(ctx, 9, orderID, usecase.AdminUpdateOrderStatusInput{Status: "delivered"}))

	orders.AssertExpectations(t)
}

// =====================
// List tests
// =====================

func TestAdminList_ForbiddenForNonAdmin(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Role: model.RoleUser}, nil)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	outs, err := uc.List(context.Background(), 2, "")
	assert.Equal(t, 0, len(outs))
	assertErrContains(t, err, "forbidden")
}

func TestAdminList_InvalidStatusFilter(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	_, err := uc.List(context.Background(), 9, "shipped")
	assertErrContains(t, err, "invalid status")
}

func TestAdminList_Success(t *testing.T) {
	orders := new(OrderRepoMock)
	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(adminUser(), nil)
	orders.On("ListAll", mock.Anything, "").Return([]model.Order{
		{ID: orderID, Status: model.OrderStatusPending},
	}, nil)

	uc := usecase.NewAdminOrderUsecase(orders, users, nil)

	outs, err := uc.List(context.Background(), 9, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.Equal(t, "pending", outs[0].Status)
}
