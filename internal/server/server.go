package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/auth"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/config"
	hrest "github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/handler/http"
	wshandler "github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/handler/ws"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/repository"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/router"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/usecase"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/dispatch"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/ws"
)

const heartbeatInterval = 30 * time.Second

// Server owns the process-wide components: the single session registry, the
// dispatcher built on it, and the HTTP server everything hangs off.
type Server struct {
	HTTP     *http.Server
	registry *ws.Registry
	stop     chan struct{}
}

func New(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (*Server, error) {
	dbpool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	// One registry per process, passed by handle to transport and producers.
	registry := ws.NewRegistry(log)
	dispatcher := dispatch.NewDispatcher(registry, log)

	userRepo := repository.NewUserRepository(dbpool)
	propRepo := repository.NewPropertyRepository(dbpool)
	enquiryRepo := repository.NewEnquiryRepository(dbpool)

	notificationUC := usecase.NewNotificationUsecase(userRepo, log)
	activityUC := usecase.NewActivityUsecase(userRepo)
	userUC := usecase.NewUserUsecase(userRepo, notificationUC, activityUC, dispatcher, tokens, log)
	propertyUC := usecase.NewPropertyUsecase(propRepo, userRepo, notificationUC, activityUC, dispatcher, log)
	enquiryUC := usecase.NewEnquiryUsecase(enquiryRepo, propRepo, userRepo, notificationUC, activityUC, dispatcher, log)

	handlers := router.Handlers{
		Auth:         hrest.NewAuthHandler(userUC),
		Notification: hrest.NewNotificationHandler(notificationUC),
		Activity:     hrest.NewActivityHandler(activityUC),
		Property:     hrest.NewPropertyHandler(propertyUC),
		Enquiry:      hrest.NewEnquiryHandler(enquiryUC),
		Socket:       wshandler.NewWSHandler(registry, tokens, log),
	}

	r := chi.NewRouter()
	router.SetupRoutes(r, handlers, tokens, rdb)

	stop := make(chan struct{})
	go registry.Heartbeat(heartbeatInterval, stop)

	return &Server{
		HTTP: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: r,
		},
		registry: registry,
		stop:     stop,
	}, nil
}

// Shutdown stops the heartbeat and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stop)
	return s.HTTP.Shutdown(ctx)
}
