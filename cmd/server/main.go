package main // entry point of the buy-tickets tool server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/billetweb-booking/internal/config"
	"github.com/iliyamo/billetweb-booking/internal/handler"
	"github.com/iliyamo/billetweb-booking/internal/middleware"
	"github.com/iliyamo/billetweb-booking/internal/provider"
	"github.com/iliyamo/billetweb-booking/internal/queue"
	"github.com/iliyamo/billetweb-booking/internal/router"
	"github.com/iliyamo/billetweb-booking/internal/service"
	"github.com/iliyamo/billetweb-booking/internal/tool"
	"github.com/iliyamo/billetweb-booking/internal/utils"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Info("redis unavailable, using in-process rate limiter")
	} else {
		defer rdb.Close()
	}

	profile := tool.DefaultProfile().WithOverrides(cfg.EventTitle, cfg.EventVenue, cfg.Billetweb.ShopBase, cfg.Billetweb.CoverURL)
	client := provider.NewClient(cfg.Billetweb, provider.WithLogger(logger))

	// A nil *AMQPAlertPublisher must not reach the service as a non-nil
	// interface.
	var alerts service.AlertPublisher
	if cfg.Alerts.Enabled {
		alerts = &service.AMQPAlertPublisher{URL: cfg.Alerts.URL}
	}
	svc := service.NewTicketService(client, tool.NewBuilder(profile), cfg.Billetweb.EventID, alerts, logger)

	reg := tool.NewRegistry()
	reg.Register(tool.BuyTicketsDescriptor(profile), svc)

	if cfg.Alerts.ConsumerEnabled {
		consumer := &queue.Consumer{URL: cfg.Alerts.URL, LogDir: "logs", Logger: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("alert consumer stopped", zap.Error(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	router.RegisterRoutes(e)
	router.RegisterTools(e, handler.NewToolHandler(reg, logger),
		middleware.HostAuth(cfg.HostJWTSecret),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger),
	)
	if cfg.HostJWTSecret == "" {
		logger.Warn("HOST_JWT_SECRET not set, tool routes are unauthenticated")
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env), zap.String("event", cfg.Billetweb.EventID))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
