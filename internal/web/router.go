package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// dirFunc serves files out of whichever directory the function returns at
// open time, so a changed download directory takes effect without a restart
type dirFunc func() string

func (d dirFunc) Open(name string) (http.File, error) {
	return http.Dir(d()).Open(name)
}

// NewRouter wires the REST and websocket surface the front-end consumes.
// mediaDir, when non-nil, resolves the directory served under /media/ so the
// player can stream downloaded files and thumbnails directly.
func NewRouter(h *Handlers, mediaDir func() string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/playlists", h.GetPlaylists)
		r.Get("/playlists/{playlistID}/tracks", h.GetPlaylistTracks)
		r.Get("/tracks", h.GetTracks)
		r.Get("/favorites", h.GetFavorites)
		r.Post("/tracks/{trackID}/favorite", h.ToggleFavorite)
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
		r.Post("/downloads", h.StartDownload)
		r.Get("/downloads/active", h.GetActiveDownload)
	})

	r.Get("/ws", h.HandleWebSocket)

	if mediaDir != nil {
		fileServer := http.StripPrefix("/media/", http.FileServer(dirFunc(mediaDir)))
		r.Get("/media/*", fileServer.ServeHTTP)
	}

	return r
}
