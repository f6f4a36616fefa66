package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripsync/cmd/fx/cache_fx"
	"tripsync/cmd/fx/config_fx"
	"tripsync/cmd/fx/controllers_fx"
	"tripsync/cmd/fx/imagery_fx"
	"tripsync/cmd/fx/logger_fx"
	"tripsync/cmd/fx/textgen_fx"
	"tripsync/cmd/fx/trip_fx"
	"tripsync/internal/api/controllers"
	"tripsync/internal/config"
	"tripsync/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		cache_fx.Module,
		textgen_fx.Module,
		trip_fx.Module,
		imagery_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Environment))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type routerParams struct {
	fx.In

	Config           *config.Config
	Logger           *zap.Logger
	TripController   *controllers.TripController
	ChatController   *controllers.ChatController
	ImageController  *controllers.ImageController
	HealthController *controllers.HealthController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger.Named("http")))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware(p.Config.RateLimit.RequestsPerMinute, p.Config.RateLimit.Burst))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/health", p.HealthController.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/generate-trip", p.TripController.GenerateTripHandler)
	api.POST("/chat", p.ChatController.ChatHandler)
	api.GET("/get-image-url", p.ImageController.GetImageURLHandler)
}
