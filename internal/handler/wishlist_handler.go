package handler

import (
	"net/http"

	"ecom/internal/config"
	"ecom/internal/domain/model"
	"ecom/internal/middleware"
	"ecom/internal/usecase"
	"ecom/internal/validator"

	"github.com/labstack/echo/v4"
)

// /wishlistのHTTP。create=追加、update=1件削除、delete=全消し。
type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

// DI
func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

type WishlistProductRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/wishlist")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(model.RoleCustomer, model.RoleAdmin))

	g.POST("/create", h.add)
	g.POST("/update", h.remove)
	g.POST("/delete", h.clear)
	g.POST("/list", h.list)
}

func (h *WishlistHandler) add(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req WishlistProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.Add(c.Request().Context(), userID, req.ProductID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, "Product added to wishlist", nil)
}

func (h *WishlistHandler) remove(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req WishlistProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.Remove(c.Request().Context(), userID, req.ProductID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Product removed from wishlist", nil)
}

func (h *WishlistHandler) clear(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	if err := h.uc.Clear(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Wishlist cleared", nil)
}

func (h *WishlistHandler) list(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), userID, q)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Wishlist fetched successfully", out.Products, q, out.Total)
}
