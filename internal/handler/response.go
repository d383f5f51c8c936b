package handler

import (
	"net/http"

	"ecom/internal/middleware"
	repo "ecom/internal/repository"
	"ecom/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全レスポンス共通の封筒
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func ok(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func okPage(c echo.Context, message string, data interface{}, q repo.PageQuery, total int64) error {
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Pagination: &Pagination{
			Page:  q.Page,
			Size:  q.Size,
			Total: total,
		},
	})
}

// usecaseのHTTPErrorを封筒に変換。それ以外は500。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, Envelope{Success: false, Message: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: "internal error"})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(int64)
	return id, ok
}

func getRoleFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserRoleKey)
	role, ok := v.(string)
	return role, ok
}

// bodyの{page, size, search}を読む。listエンドポイント共通。
type PageRequest struct {
	Page   int    `json:"page"`
	Size   int    `json:"size"`
	Search string `json:"search"`
}

func (r PageRequest) toQuery() repo.PageQuery {
	q := repo.PageQuery{Page: r.Page, Size: r.Size, Search: r.Search}
	q.Normalize()
	return q
}
