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

// /categoriesのHTTP
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    *int64 `json:"parent_id" validate:"omitempty,gt=0"`
	IsFeatured  bool   `json:"is_featured"`
	SortOrder   int64  `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsFeatured  *bool   `json:"is_featured"`
	SortOrder   *int64  `json:"sort_order"`
}

type CategoryIDRequest struct {
	CategoryID int64 `json:"category_id" validate:"required,gt=0"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/categories/list", h.list)
	e.GET("/categories/with-subcategories", h.withSubCategories)
	e.GET("/categories/:id", h.getByID, middleware.AuthJWT(cfg))

	admin := e.Group("/categories")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RoleGuard(model.RoleAdmin))
	admin.POST("/create", h.create)
	admin.POST("/update", h.update)
	admin.POST("/delete", h.softDelete)
	admin.POST("/restore", h.restore)
	admin.POST("/list/delete", h.listDeleted)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	category, err := h.uc.Create(c.Request().Context(), usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
		IsFeatured:  req.IsFeatured,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHandler) update(c echo.Context) error {
	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.uc.Update(c.Request().Context(), req.CategoryID, usecase.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsFeatured:  req.IsFeatured,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Category updated successfully", nil)
}

func (h *CategoryHandler) softDelete(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req CategoryIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.SoftDelete(c.Request().Context(), actorID, req.CategoryID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) restore(c echo.Context) error {
	var req CategoryIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.Restore(c.Request().Context(), req.CategoryID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Category restored successfully", nil)
}

func (h *CategoryHandler) list(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, true)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Categories fetched successfully", out.Categories, q, out.Total)
}

func (h *CategoryHandler) listDeleted(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, false)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Deleted categories fetched successfully", out.Categories, q, out.Total)
}

// 公開のツリー表示
func (h *CategoryHandler) withSubCategories(c echo.Context) error {
	categories, err := h.uc.ListWithSubCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Categories fetched successfully", categories)
}

func (h *CategoryHandler) getByID(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	category, err := h.uc.GetByID(c.Request().Context(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Category fetched successfully", category)
}
