package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"ninjashop/internal/config"
	"ninjashop/internal/middleware"
	"ninjashop/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func New(cfg config.Config, logger *zap.Logger, h Handlers, auth middleware.Authenticator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	// multipartの上限。画像サイズ + フォーム分の余裕
	e.Use(echomw.BodyLimit(strconv.FormatInt(cfg.MaxUploadBytes/1024+1024, 10) + "K"))

	RegisterRoutes(e, cfg, h, auth)
	return e
}

// ctxがキャンセルされたらgracefulに止める
func Start(ctx context.Context, e *echo.Echo, addr string, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	return e.Shutdown(shutdownCtx)
}
