package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/blogrender/internal/dom"
	"github.com/ziadkadry99/blogrender/internal/page"
	"github.com/ziadkadry99/blogrender/internal/posts"
	"github.com/ziadkadry99/blogrender/internal/site"
)

func (s *Server) registerPageRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/page/{n}", s.handleIndex)
	r.Get("/page/{n}/", s.handleIndex)
	r.Get("/post.html", s.handlePost)
	r.Get("/posts/{slug}", s.handlePost)
	r.Get("/posts/{slug}/", s.handlePost)
	r.Get("/"+site.IndexFile, s.handleIndexJSON)

	if s.cfg.SiteDir != "" {
		r.NotFound(http.FileServer(http.Dir(s.cfg.SiteDir)).ServeHTTP)
	}
}

func pageNumber(r *http.Request) int {
	v := chi.URLParam(r, "n")
	if v == "" {
		v = r.URL.Query().Get("page")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 1
	}
	return n
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc, err := s.shells.ParseIndex()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	req := page.Request{Page: pageNumber(r), PageLink: site.IndexPageLink}
	s.render(w, r, doc, s.ctrl.Render(r.Context(), doc, req))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	doc, err := s.shells.ParsePost()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		slug = r.URL.Query().Get("slug")
	}
	s.render(w, r, doc, s.ctrl.Render(r.Context(), doc, page.Request{Slug: slug}))
}

// statusFor maps a render failure to a status code. The page body always
// carries the rendered error.
func statusFor(err error) int {
	var de *posts.DatasetError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, page.ErrNoSlug), errors.Is(err, page.ErrSlugMismatch):
		return http.StatusNotFound
	case errors.As(err, &de):
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, doc *dom.Document, renderErr error) {
	if renderErr != nil {
		s.logger.Warn("page rendered with error",
			zap.String("path", r.URL.Path),
			zap.Error(renderErr))
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusFor(renderErr))
	w.Write(buf.Bytes())
}

func (s *Server) handleIndexJSON(w http.ResponseWriter, r *http.Request) {
	all, err := s.dataset.LoadFull(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(site.BuildIndex(all))
}
