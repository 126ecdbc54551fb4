package router

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tacocloud/web/internal/catalog"
	"github.com/tacocloud/web/internal/config"
	"github.com/tacocloud/web/internal/handler"
	mw "github.com/tacocloud/web/internal/middleware"
	"github.com/tacocloud/web/internal/service"
	"github.com/tacocloud/web/internal/session"
	"github.com/tacocloud/web/internal/web"
	"github.com/tacocloud/web/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Page routes run inside a browser session; the JSON API, static assets and
// the kitchen feed do not.
func New(cfg *config.Config, cat *catalog.Catalog, sessions *session.Store, svc *service.OrderService, renderer *web.Renderer, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":       "ok",
			"sessions":     sessions.Len(),
			"feed_clients": hub.ClientCount(),
		})
	})

	static := http.FileServer(http.FS(web.Static()))
	r.Handle("/images/*", static)
	r.Handle("/styles.css", static)

	// Kitchen feed
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.FeedToken, w, r)
	})

	// Ingredient API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300, // 5 minutes
		}))

		ingredientHandler := handler.NewIngredientHandler(cat)
		r.Route("/ingredients", ingredientHandler.RegisterRoutes)
	})

	// Session-scoped pages
	r.Group(func(r chi.Router) {
		r.Use(mw.Session(sessions, cfg.SessionSecret, cfg.SecureCookies))

		homeHandler := handler.NewHomeHandler(renderer)
		homeHandler.RegisterRoutes(r)

		designHandler := handler.NewDesignHandler(svc, cat, renderer)
		r.Route("/design", designHandler.RegisterRoutes)

		orderHandler := handler.NewOrderHandler(svc, renderer)
		r.Route("/orders", orderHandler.RegisterRoutes)
	})

	log.Println("Router initialized with all handlers")
	return r
}
