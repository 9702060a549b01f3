package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"freightquote/internal/app/config"
	"freightquote/internal/app/http/handlers"
	"freightquote/internal/app/http/middleware"
	"freightquote/internal/domain/quote/pdf"
)

func NewRouter(cfg config.Config, gen pdf.Generator, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(cfg, gen, logger)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/options", h.Options)
		r.Post("/forms", h.CreateForm)

		r.Route("/forms/{formID}", func(r chi.Router) {
			r.Get("/", h.GetForm)
			r.Delete("/", h.DeleteForm)
			r.Patch("/fields", h.UpdateFields)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{index}", h.UpdateItem)
			r.Delete("/items/{index}", h.RemoveItem)
			r.Post("/items/{index}/move", h.MoveItem)
			r.Post("/submit", h.SubmitQuote)
		})
	})

	return r
}
