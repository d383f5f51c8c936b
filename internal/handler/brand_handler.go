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

// /brandsのHTTP
type BrandHandler struct {
	uc *usecase.BrandUsecase
}

// DI
func NewBrandHandler(uc *usecase.BrandUsecase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

type CreateBrandRequest struct {
	Name               string `json:"name" validate:"required,max=255"`
	Description        string `json:"description"`
	Website            string `json:"website" validate:"omitempty,url"`
	Logo               string `json:"logo"`
	SEOMetaTitle       string `json:"seo_meta_title" validate:"max=255"`
	SEOMetaDescription string `json:"seo_meta_description"`
}

type UpdateBrandRequest struct {
	BrandID            int64   `json:"brand_id" validate:"required,gt=0"`
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	Website            *string `json:"website" validate:"omitempty,url"`
	Logo               *string `json:"logo"`
	SEOMetaTitle       *string `json:"seo_meta_title"`
	SEOMetaDescription *string `json:"seo_meta_description"`
}

type BrandIDRequest struct {
	BrandID int64 `json:"brand_id" validate:"required,gt=0"`
}

// 公開ルートと管理者ルートを登録
func (h *BrandHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/brands/list", h.list)
	e.GET("/brands/:slug", h.getBySlug)

	admin := e.Group("/brands")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RoleGuard(model.RoleAdmin))
	admin.POST("/create", h.create)
	admin.POST("/update", h.update)
	admin.POST("/delete", h.softDelete)
	admin.POST("/restore", h.restore)
	admin.POST("/list/deleted", h.listDeleted)
}

func (h *BrandHandler) create(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req CreateBrandRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	brand, err := h.uc.Create(c.Request().Context(), actorID, usecase.CreateBrandInput{
		Name:               req.Name,
		Description:        req.Description,
		Website:            req.Website,
		Logo:               req.Logo,
		SEOMetaTitle:       req.SEOMetaTitle,
		SEOMetaDescription: req.SEOMetaDescription,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, "Brand created successfully", brand)
}

func (h *BrandHandler) update(c echo.Context) error {
	var req UpdateBrandRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.uc.Update(c.Request().Context(), req.BrandID, usecase.UpdateBrandInput{
		Name:               req.Name,
		Description:        req.Description,
		Website:            req.Website,
		Logo:               req.Logo,
		SEOMetaTitle:       req.SEOMetaTitle,
		SEOMetaDescription: req.SEOMetaDescription,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Brand updated successfully", nil)
}

func (h *BrandHandler) softDelete(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req BrandIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.SoftDelete(c.Request().Context(), actorID, req.BrandID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Brand deleted successfully", nil)
}

func (h *BrandHandler) restore(c echo.Context) error {
	var req BrandIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.Restore(c.Request().Context(), req.BrandID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Brand restored successfully", nil)
}

func (h *BrandHandler) list(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, true)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Brands fetched successfully", out.Brands, q, out.Total)
}

func (h *BrandHandler) listDeleted(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, false)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Deleted brands fetched successfully", out.Brands, q, out.Total)
}

func (h *BrandHandler) getBySlug(c echo.Context) error {
	brand, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Brand fetched successfully", brand)
}
