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

// /ratingsのHTTP
type RatingHandler struct {
	uc *usecase.RatingUsecase
}

// DI
func NewRatingHandler(uc *usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

type CreateRatingRequest struct {
	ProductID int64    `json:"product_id" validate:"required,gt=0"`
	Rating    int64    `json:"rating" validate:"required,gte=1,lte=5"`
	Title     string   `json:"title" validate:"max=255"`
	Review    string   `json:"review"`
	Images    []string `json:"images"`
}

type UpdateRatingRequest struct {
	RatingID int64    `json:"rating_id" validate:"required,gt=0"`
	Rating   *int64   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Title    *string  `json:"title"`
	Review   *string  `json:"review"`
	Images   []string `json:"images"`
}

type RatingIDRequest struct {
	RatingID int64 `json:"rating_id" validate:"required,gt=0"`
}

func (h *RatingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/ratings")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/create", h.create, middleware.RoleGuard(model.RoleAdmin, model.RoleCustomer))
	g.POST("/update", h.update, middleware.RoleGuard(model.RoleAdmin, model.RoleCustomer))
	g.POST("/list", h.list, middleware.RoleGuard(model.RoleAdmin, model.RoleCustomer))
	g.POST("/delete", h.softDelete, middleware.RoleGuard(model.RoleAdmin))
	g.POST("/restore", h.restore, middleware.RoleGuard(model.RoleAdmin))
	g.POST("/list/delete", h.listDeleted, middleware.RoleGuard(model.RoleAdmin))
}

func (h *RatingHandler) create(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	rating, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateRatingInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Title:     req.Title,
		Review:    req.Review,
		Images:    req.Images,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, "Review created successfully", rating)
}

func (h *RatingHandler) update(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req UpdateRatingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.uc.Update(c.Request().Context(), userID, req.RatingID, usecase.UpdateRatingInput{
		Rating: req.Rating,
		Title:  req.Title,
		Review: req.Review,
		Images: req.Images,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Review updated successfully", nil)
}

func (h *RatingHandler) softDelete(c echo.Context) error {
	actorID, actorRole, okActor := actorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req RatingIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.SoftDelete(c.Request().Context(), actorID, actorRole, req.RatingID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Review deleted successfully", nil)
}

func (h *RatingHandler) restore(c echo.Context) error {
	var req RatingIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.Restore(c.Request().Context(), req.RatingID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Review restored successfully", nil)
}

func (h *RatingHandler) list(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, true)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Reviews fetched successfully", out.Ratings, q, out.Total)
}

func (h *RatingHandler) listDeleted(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, false)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Deleted reviews fetched successfully", out.Ratings, q, out.Total)
}
