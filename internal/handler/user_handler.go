package handler

import (
	"fmt"
	"net/http"
	"time"

	"ecom/internal/config"
	"ecom/internal/domain/model"
	"ecom/internal/middleware"
	"ecom/internal/usecase"
	"ecom/internal/validator"

	"github.com/labstack/echo/v4"
)

// /usersの管理・プロフィールHTTP
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type UpdateUserRequest struct {
	UserID int64   `json:"user_id" validate:"required,gt=0"`
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
}

type UserIDRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

type UpdateProfileRequest struct {
	Avatar      *string         `json:"avatar"`
	Phone       *string         `json:"phone"`
	Gender      *string         `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth *time.Time      `json:"date_of_birth"`
	Bio         *string         `json:"bio"`
	Addresses   []model.Address `json:"addresses"`
}

// 認証必須のユーザー系ルートを登録
func (h *UserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/users")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/update", h.update, middleware.RoleGuard(model.RoleAdmin))
	g.POST("/delete", h.softDelete, middleware.RoleGuard(model.RoleAdmin))
	g.POST("/restore", h.restore, middleware.RoleGuard(model.RoleAdmin))
	g.POST("/list", h.list, middleware.RoleGuard(model.RoleAdmin, model.RoleCustomer))
	g.POST("/list/delete", h.listDeleted, middleware.RoleGuard(model.RoleAdmin))
	g.POST("/profile", h.profile)
}

func (h *UserHandler) update(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.uc.Update(c.Request().Context(), req.UserID, usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "User updated successfully", nil)
}

func (h *UserHandler) softDelete(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req UserIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.uc.SoftDelete(c.Request().Context(), actorID, req.UserID)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, fmt.Sprintf("User %s deleted successfully", user.Name), nil)
}

func (h *UserHandler) restore(c echo.Context) error {
	actorID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req UserIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.uc.Restore(c.Request().Context(), actorID, req.UserID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "User restored successfully", nil)
}

func (h *UserHandler) list(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, true)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Users fetched successfully", out.Users, q, out.Total)
}

func (h *UserHandler) listDeleted(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q := req.toQuery()

	out, err := h.uc.List(c.Request().Context(), q, false)
	if err != nil {
		return writeError(c, err)
	}

	return okPage(c, "Deleted users fetched successfully", out.Users, q, out.Total)
}

// 空bodyなら取得、フィールドがあれば部分更新
func (h *UserHandler) profile(c echo.Context) error {
	userID, okID := getUserIDFromContext(c)
	if !okID {
		return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	profile, err := h.uc.GetOrUpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Avatar:      req.Avatar,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Bio:         req.Bio,
		Addresses:   req.Addresses,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Profile fetched successfully", profile)
}
