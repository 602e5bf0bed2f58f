package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wardrobe/internal/auth"
	"wardrobe/internal/config"
	"wardrobe/internal/http/handler"
	mw "wardrobe/internal/http/middleware"
	"wardrobe/internal/quality"
	"wardrobe/internal/wardrobe"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	svc := &wardrobe.Service{DB: db}
	itemH := &handler.ItemHandler{Svc: svc}
	outfitH := &handler.OutfitHandler{Svc: svc}
	wearH := &handler.WearHandler{Svc: svc}

	store := &quality.GormStore{DB: db}
	engine := quality.NewEngine(store, log)
	qualityH := &handler.QualityHandler{Engine: engine, Store: store}

	r.Route("/items", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))
		r.Post("/", itemH.Create)
		r.Get("/", itemH.List)
	})

	r.Route("/outfits", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))
		r.Post("/", outfitH.Create)
		r.Get("/", outfitH.List)
	})

	r.Route("/wear", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))
		r.Post("/outfits", wearH.LogOutfit)
		r.Post("/items", wearH.LogItem)
		r.Delete("/outfits/{id}", wearH.DeleteOutfitLog)
	})

	r.Route("/quality", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))
		r.Get("/summary", qualityH.Summary)
		r.Get("/suggestions", qualityH.Suggestions)
		r.Patch("/suggestions/{id}", qualityH.UpdateSuggestion)
		r.Get("/preferences", qualityH.GetPreferences)
		r.Patch("/preferences", qualityH.UpdatePreferences)
	})

	return r
}
