package handler

import (
	"net/http"
	"strconv"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /goods の公開API
type GoodHandler struct {
	uc *usecase.GoodUsecase
}

// DI
func NewGoodHandler(uc *usecase.GoodUsecase) *GoodHandler {
	return &GoodHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *GoodHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/goods", h.list)
	e.GET("/goods/:id", h.detail)
}

func (h *GoodHandler) list(c echo.Context) error {
	out, err := h.uc.ListGoods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GoodHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetGood(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
