package handler

import (
	"net/http"
	"strconv"

	"ecom/internal/config"
	"ecom/internal/domain/model"
	"ecom/internal/middleware"
	"ecom/internal/usecase"
	"ecom/internal/validator"

	"github.com/labstack/echo/v4"
)

// /ordersのHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type CheckoutRequest struct {
	FullName   string `json:"full_name" validate:"required,max=255"`
	Phone      string `json:"phone" validate:"required,max=30"`
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country"`

	PaymentMethod string `json:"payment_method" validate:"required,oneof=COD CARD UPI NET_BANKING WALLET"`
	Notes         string `json:"notes"`
}

type PayRequest struct {
	Provider      string `json:"provider"`
	TransactionID string `json:"transaction_id" validate:"required"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/create", h.checkout, middleware.RoleGuard(model.RoleCustomer, model.RoleAdmin))
	g.POST("/my", h.myOrders)
	g.GET("/:id", h.getByID)
	g.POST("/:id/pay", h.pay)
	g.POST("/:id/status", h.updateStatus, middleware.RoleGuard(model.RoleAdmin))
	g.POST("/:id/cancel", h.cancel)
	g.POST("/:id/return", h.requestReturn)
	g.GET("/:id/history", h.history, middleware.RoleGuard(model.RoleAdmin))
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	country := req.Country
	if country == "" {
		country = "India"
	}

	order, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		ShippingAddress: model.ShippingAddress{
			FullName:   req.FullName,
			Phone:      req.Phone,
			Street:     req.Street,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
			Country:    country,
		},
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *OrderHandler) myOrders(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.MyOrders(c.Request().Context(), userID, q)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Orders fetched successfully", out.Orders, q, out.Total)
}

func (h *OrderHandler) getByID(c echo.Context) error {
	actorID, actorRole, okActor := actorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	orderID, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return badRequest(c, "invalid id")
	}

	order, err := h.uc.GetByID(c.Request().Context(), actorID, actorRole, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order fetched successfully", order)
}

func (h *OrderHandler) pay(c echo.Context) error {
	actorID, actorRole, okActor := actorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	orderID, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return badRequest(c, "invalid id")
	}

	var req PayRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	order, err := h.uc.MarkPaid(c.Request().Context(), actorID, actorRole, orderID, usecase.MarkPaidInput{
		Provider:      req.Provider,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Payment recorded successfully", order)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	orderID, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return badRequest(c, "invalid id")
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), actorID, orderID, model.OrderStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order status updated successfully", order)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	orderID, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return badRequest(c, "invalid id")
	}

	var req CancelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	order, err := h.uc.Cancel(c.Request().Context(), actorID, orderID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order cancelled successfully", order)
}

func (h *OrderHandler) requestReturn(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	orderID, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return badRequest(c, "invalid id")
	}

	order, err := h.uc.RequestReturn(c.Request().Context(), actorID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Return requested successfully", order)
}

func (h *OrderHandler) history(c echo.Context) error {
	orderID, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return badRequest(c, "invalid id")
	}

	logs, err := h.uc.History(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order history fetched successfully", logs)
}

// contextからactorのIDとroleを取り出す
func actorFromContext(c echo.Context) (int64, model.Role, bool) {
	actorID, okID := getUserIDFromContext(c)
	role, okRole := getRoleFromContext(c)
	if !okID || !okRole {
		return 0, "", false
	}
	return actorID, model.Role(role), true
}
