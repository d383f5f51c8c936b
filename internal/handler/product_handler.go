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

// /productsのHTTP
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type CreateProductRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	BrandID       *int64   `json:"brand_id" validate:"omitempty,gt=0"`
	CategoryID    *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Thumbnail     string   `json:"thumbnail"`
	Images        []string `json:"images"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gt=0"`

	Description    string                 `json:"description"`
	Specifications map[string]interface{} `json:"specifications"`
	Stock          int64                  `json:"stock" validate:"gte=0"`
	Warranty       string                 `json:"warranty"`
	ShippingInfo   string                 `json:"shipping_info"`
	ReturnPolicy   string                 `json:"return_policy"`
}

type UpdateProductRequest struct {
	ProductID     int64    `json:"product_id" validate:"required,gt=0"`
	Title         *string  `json:"title"`
	BrandID       *int64   `json:"brand_id" validate:"omitempty,gt=0"`
	CategoryID    *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Thumbnail     *string  `json:"thumbnail"`
	Images        []string `json:"images"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gt=0"`

	Description    *string                `json:"description"`
	Specifications map[string]interface{} `json:"specifications"`
	Stock          *int64                 `json:"stock" validate:"omitempty,gte=0"`
	Warranty       *string                `json:"warranty"`
	ShippingInfo   *string                `json:"shipping_info"`
	ReturnPolicy   *string                `json:"return_policy"`
}

type ProductIDRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type ProductListRequest struct {
	PageRequest
	CategoryID *int64 `json:"category_id" validate:"omitempty,gt=0"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/products/list", h.list)
	e.GET("/products/:id", h.getByID, middleware.AuthJWT(cfg))

	staff := e.Group("/products")
	staff.Use(middleware.AuthJWT(cfg))
	staff.POST("/create", h.create, middleware.RoleGuard(model.RoleAdmin, model.RoleSeller))
	staff.POST("/update", h.update, middleware.RoleGuard(model.RoleAdmin, model.RoleSeller))
	staff.POST("/delete", h.softDelete, middleware.RoleGuard(model.RoleAdmin))
	staff.POST("/restore", h.restore, middleware.RoleGuard(model.RoleAdmin))
	staff.POST("/list/deleted", h.listDeleted, middleware.RoleGuard(model.RoleAdmin))
}

func (h *ProductHandler) create(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	out, err := h.uc.Create(c.Request().Context(), actorID, usecase.CreateProductInput{
		Title:          req.Title,
		BrandID:        req.BrandID,
		CategoryID:     req.CategoryID,
		Thumbnail:      req.Thumbnail,
		Images:         req.Images,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		Description:    req.Description,
		Specifications: req.Specifications,
		Stock:          req.Stock,
		Warranty:       req.Warranty,
		ShippingInfo:   req.ShippingInfo,
		ReturnPolicy:   req.ReturnPolicy,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, "Product created successfully", out)
}

func (h *ProductHandler) update(c echo.Context) error {
	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.uc.Update(c.Request().Context(), req.ProductID, usecase.UpdateProductInput{
		Title:          req.Title,
		BrandID:        req.BrandID,
		CategoryID:     req.CategoryID,
		Thumbnail:      req.Thumbnail,
		Images:         req.Images,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		Description:    req.Description,
		Specifications: req.Specifications,
		Stock:          req.Stock,
		Warranty:       req.Warranty,
		ShippingInfo:   req.ShippingInfo,
		ReturnPolicy:   req.ReturnPolicy,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Product updated successfully", nil)
}

func (h *ProductHandler) softDelete(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req ProductIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.SoftDelete(c.Request().Context(), actorID, req.ProductID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) restore(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req ProductIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.Restore(c.Request().Context(), actorID, req.ProductID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Product restored successfully", nil)
}

func (h *ProductHandler) list(c echo.Context) error {
	var req ProductListRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), usecase.ProductListInput{
		PageQuery:  q,
		CategoryID: req.CategoryID,
	}, true)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Products fetched successfully", out.Products, q, out.Total)
}

func (h *ProductHandler) listDeleted(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), usecase.ProductListInput{PageQuery: q}, false)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Deleted products fetched successfully", out.Products, q, out.Total)
}

func (h *ProductHandler) getByID(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetByID(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Product fetched successfully", out)
}
