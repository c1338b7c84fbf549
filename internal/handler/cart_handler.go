package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shop/internal/cartstore"
	"shop/internal/domain/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const cartProfileCookie = "cart_profile"

// /cartのHTTP。カートは認証ではなくブラウザプロファイル（cookie）に紐づく。
// 同一端末でアカウントを切り替えても前のカートを引き継ぐ（意図した簡略化）。
type CartHandler struct {
	kv  cartstore.KV
	log *slog.Logger
}

// DI
func NewCartHandler(kv cartstore.KV, log *slog.Logger) *CartHandler {
	return &CartHandler{kv: kv, log: log}
}

type AddCartItemRequest struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type SetNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type CartResponse struct {
	Items      []cartstore.Item `json:"items"`
	TotalItems int64            `json:"total_items"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Nickname   string           `json:"nickname"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id", h.patchItem)
	g.DELETE("/items/:id", h.deleteItem)
	g.DELETE("", h.clear)
	g.PUT("/nickname", h.setNickname)
}

// リクエストごとにKVから復元したStoreを作る。
// 複数タブが同じプロファイルを書いた場合はlast-write-wins。
func (h *CartHandler) store(c echo.Context) *cartstore.Store {
	return cartstore.New(h.kv, cartProfileID(c), h.log)
}

func (h *CartHandler) getCart(c echo.Context) error {
	st := h.store(c)
	return c.JSON(http.StatusOK, cartResponse(c, st))
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ID <= 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item"})
	}
	if req.Price.IsNegative() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}
	category := model.GoodCategory(req.Category)
	if !category.Valid() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category"})
	}

	st := h.store(c)
	st.Add(c.Request().Context(), cartstore.Item{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Category: category,
		Image:    req.Image,
	}, req.Quantity)

	return c.JSON(http.StatusOK, cartResponse(c, st))
}

func (h *CartHandler) patchItem(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	st := h.store(c)
	st.UpdateQuantity(c.Request().Context(), itemID, req.Quantity)

	return c.JSON(http.StatusOK, cartResponse(c, st))
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	st := h.store(c)
	st.Remove(c.Request().Context(), itemID)

	return c.JSON(http.StatusOK, cartResponse(c, st))
}

func (h *CartHandler) clear(c echo.Context) error {
	st := h.store(c)
	st.Clear(c.Request().Context())

	return c.JSON(http.StatusOK, cartResponse(c, st))
}

func (h *CartHandler) setNickname(c echo.Context) error {
	var req SetNicknameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	st := h.store(c)
	st.SetNickname(c.Request().Context(), req.Nickname)

	return c.JSON(http.StatusOK, cartResponse(c, st))
}

func cartResponse(c echo.Context, st *cartstore.Store) CartResponse {
	ctx := c.Request().Context()
	return CartResponse{
		Items:      st.Items(ctx),
		TotalItems: st.TotalItems(ctx),
		TotalPrice: st.TotalPrice(ctx),
		Nickname:   st.Nickname(ctx),
	}
}

// cookieからプロファイルIDを取る。無ければ発行して付ける。
func cartProfileID(c echo.Context) string {
	ck, err := c.Cookie(cartProfileCookie)
	if err == nil && ck.Value != "" {
		return ck.Value
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartProfileCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
	})
	return id
}
