package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"superagent/cmd/fx/chat_fx"
	"superagent/cmd/fx/config_fx"
	"superagent/cmd/fx/logger_fx"
	"superagent/cmd/fx/mail_fx"
	"superagent/cmd/fx/memcache_fx"
	"superagent/cmd/fx/sheet_fx"
	"superagent/internal/api/controllers"
	"superagent/internal/config"
	"superagent/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		memcache_fx.Module,
		sheet_fx.Module,
		mail_fx.Module,
		chat_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg config.Config, chatController *controllers.ChatController) *gin.Engine {
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	controllers.RegisterRoutes(r, chatController, cfg.Session.CookieName)

	return r
}
