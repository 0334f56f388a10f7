package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/auth"
	hrest "github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/handler/http"
	wshandler "github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/handler/ws"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/middleware"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/response"
)

type Handlers struct {
	Auth         *hrest.AuthHandler
	Notification *hrest.NotificationHandler
	Activity     *hrest.ActivityHandler
	Property     *hrest.PropertyHandler
	Enquiry      *hrest.EnquiryHandler
	Socket       *wshandler.WSHandler
}

// SetupRoutes wires the HTTP surface. Authenticated groups share the JWT
// middleware; the websocket endpoint authenticates itself because an
// anonymous session is still allowed to connect.
func SetupRoutes(r chi.Router, h Handlers, tokens *auth.TokenManager, rdb *redis.Client) chi.Router {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RateLimiter(rdb, 100, time.Minute, 10*time.Minute, "global"))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/properties", h.Property.List)
		r.Get("/properties/{id}", h.Property.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Patch("/auth/password", h.Auth.ChangePassword)
			r.Patch("/auth/profile", h.Auth.UpdateProfile)

			r.Route("/user/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Patch("/", h.Notification.MarkRead)
				r.Delete("/", h.Notification.Delete)
			})
			r.Get("/user/activities", h.Activity.List)
			r.Get("/user/properties", h.Property.ListMine)

			r.Post("/properties", h.Property.Create)
			r.Patch("/properties/{id}", h.Property.Update)
			r.Delete("/properties/{id}", h.Property.Delete)

			r.Post("/enquiries", h.Enquiry.Create)
			r.Get("/enquiries", h.Enquiry.List)
			r.Delete("/enquiries/{id}", h.Enquiry.Delete)
		})
	})

	r.Get("/ws", h.Socket.HandleConnection)

	return r
}
