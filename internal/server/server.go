// Package server provides the local preview server for built outputs:
// a static file server over the output directory plus a Server-Sent Events
// endpoint that tells open browser tabs to reload after a rebuild.
package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// reloadScript is served at /__reload.js and injected into preview pages.
// It reconnects automatically because EventSource retries on its own.
const reloadScript = `(function () {
  var src = new EventSource("/__events");
  src.addEventListener("reload", function () { location.reload(); });
})();
`

// scriptTag is appended to served HTML documents.
const scriptTag = `<script src="/__reload.js"></script>`

// Server serves one output directory with live reload.
type Server struct {
	dir    string
	broker *Broker
	logger *slog.Logger
}

// New creates a preview server over dir. A nil logger discards output.
func New(dir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{dir: dir, broker: NewBroker(), logger: logger}
}

// NotifyReload tells connected browser tabs to reload.
func (s *Server) NotifyReload() {
	s.broker.NotifyReload()
}

// Close disconnects all clients.
func (s *Server) Close() {
	s.broker.Close()
}

// Handler returns the HTTP handler: static files plus the reload endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/__reload.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte(reloadScript))
	})

	r.Get("/__events", s.handleEvents)

	r.Get("/*", s.handleFile)

	return r
}

// handleEvents streams SSE reload events until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := s.broker.Subscribe()
	defer s.broker.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// handleFile serves files from the output directory. HTML responses get the
// reload script appended so rebuilt pages refresh themselves.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")
	if rel == "" {
		rel = "index.html"
	}

	// Resolve inside the output dir only.
	path := filepath.Join(s.dir, filepath.Clean("/"+rel))

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = filepath.Join(path, "index.html")
		info, err = os.Stat(path)
	}
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if !strings.HasSuffix(path, ".html") {
		http.ServeFile(w, r, path)
		return
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is confined to the output dir
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(injectReload(data))

	s.logger.Debug("served", slog.String("path", rel), slog.Int64("bytes", info.Size()))
}

// injectReload inserts the reload script before </body>, or appends it when
// no closing tag exists (pandoc output always has one; hand-written
// fragments may not).
func injectReload(html []byte) []byte {
	const closing = "</body>"
	if idx := strings.LastIndex(string(html), closing); idx >= 0 {
		out := make([]byte, 0, len(html)+len(scriptTag))
		out = append(out, html[:idx]...)
		out = append(out, scriptTag...)
		out = append(out, html[idx:]...)
		return out
	}
	return append(html, scriptTag...)
}
