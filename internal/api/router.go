package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/signup", apiHandler.SignupHandler)
	r.Get("/users/{uid}", apiHandler.GetProfileHandler)

	r.Get("/posts", apiHandler.ListPostsHandler)
	r.Post("/posts", apiHandler.CreatePostHandler)
	r.Get("/posts/{postID}/recommendation", apiHandler.RecommendationHandler)

	r.Post("/echoes", apiHandler.CreateEchoHandler)
	r.Get("/echoes", apiHandler.ListEchoesHandler)
	r.Post("/echoes/{echoID}/glimmer", apiHandler.AddGlimmerHandler)

	return r
}
