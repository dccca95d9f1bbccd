// Package pandalhopper exposes the trip-planning orchestrator to a UI
// shell as a JSON API.
package pandalhopper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/festival-transit/pandal-hopper/backend"
	"github.com/festival-transit/pandal-hopper/config"
	"github.com/festival-transit/pandal-hopper/maprender"
	"github.com/festival-transit/pandal-hopper/session"
	"github.com/festival-transit/pandal-hopper/trip"
)

// App wires the orchestrator, the map adapter, the backend client and the
// session context behind the HTTP surface.
type App struct {
	cfg     config.AppConfig
	orch    *trip.Orchestrator
	adapter *maprender.Adapter
	sess    *session.Session
	api     *backend.Client

	server *http.Server
}

func NewApp(cfg config.AppConfig, orch *trip.Orchestrator, adapter *maprender.Adapter, sess *session.Session, api *backend.Client) *App {
	return &App{cfg: cfg, orch: orch, adapter: adapter, sess: sess, api: api}
}

// Router builds the chi router for the surface. Split out so tests can
// exercise handlers without a listener.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", a.handleHealth)
	r.Get("/api/state", a.handleState)
	r.Get("/api/view", a.handleView)
	r.Get("/api/zones", a.handleZones)

	r.Post("/api/location", a.handleSetLocation)
	r.Post("/api/nearest/retry", a.handleRetryNearest)
	r.Post("/api/zone", a.handleSelectZone)
	r.Post("/api/station", a.handleSelectStation)
	r.Post("/api/route/plan", a.handlePlanRoute)
	r.Post("/api/route/clear", a.handleClearRoute)
	r.Post("/api/map/click", a.handleMapClick)
	r.Post("/api/map/reset", a.handleMapReset)

	r.Post("/api/auth/signup", a.handleSignup)
	r.Post("/api/auth/login", a.handleLogin)
	r.Post("/api/auth/logout", a.handleLogout)
	r.Get("/api/auth/status", a.handleAuthStatus)

	return r
}

func (a *App) StartServer() {
	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

func (a *App) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
