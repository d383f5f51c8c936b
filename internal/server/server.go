package server

import (
	"ecom/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Echo本体を組み立てる。ルート登録は呼び出し側（cmd/api）で行う。
func New(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// CORSはフロントのoriginだけ許可（未設定なら全許可のdev挙動）
	corsCfg := echomw.DefaultCORSConfig
	if cfg.FEURL != "" {
		corsCfg.AllowOrigins = []string{cfg.FEURL}
		corsCfg.AllowCredentials = true
	}
	e.Use(echomw.CORSWithConfig(corsCfg))

	return e
}

func Start(e *echo.Echo, port string) error {
	return e.Start(":" + port)
}
