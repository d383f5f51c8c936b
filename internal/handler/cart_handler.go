package handler

import (
	"net/http"

	"ecom/internal/config"
	"ecom/internal/domain/model"
	"ecom/internal/middleware"
	"ecom/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /users/cartのHTTP。取得と増減を1エンドポイントで受ける。
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type CartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"` // 符号付きの増減
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/users/cart", h.cart,
		middleware.AuthJWT(cfg),
		middleware.RoleGuard(model.RoleCustomer, model.RoleAdmin))
}

func (h *CartHandler) cart(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req CartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	// product_id無しは取得だけ
	if req.ProductID == 0 {
		out, err := h.uc.Get(c.Request().Context(), userID)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Cart fetched successfully", out)
	}

	out, err := h.uc.ApplyDelta(c.Request().Context(), userID, usecase.ApplyDeltaInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Cart updated successfully", out)
}
