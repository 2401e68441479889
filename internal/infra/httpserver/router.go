package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/realitylabs/reality-check/internal/application/analysis"
	"github.com/realitylabs/reality-check/internal/domain/analysis"
	"github.com/realitylabs/reality-check/internal/domain/identity"
	domain "github.com/realitylabs/reality-check/internal/domain/submission"
	"github.com/realitylabs/reality-check/internal/middleware"
)

type Router struct {
	svc            *appanalysis.Service
	maxUploadBytes int64
}

func NewRouter(svc *appanalysis.Service, resolver identity.Resolver, maxUploadBytes int64) http.Handler {
	r := &Router{svc: svc, maxUploadBytes: maxUploadBytes}
	mux := chi.NewRouter()

	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	mux.Route("/api", func(rt chi.Router) {
		rt.Group(func(rt chi.Router) {
			rt.Use(middleware.OptionalIdentity(resolver))
			rt.Post("/analyze", r.wrap(r.handleAnalyze))
		})
		rt.Group(func(rt chi.Router) {
			rt.Use(middleware.RequireIdentity(resolver))
			rt.Get("/submissions", r.wrap(r.handleList))
			rt.Get("/submissions/{id}", r.wrap(r.handleGet))
			rt.Post("/submissions/{id}/verify", r.wrap(r.handleVerify))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, appanalysis.ErrUnsupportedType):
				http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			case errors.Is(err, appanalysis.ErrNoFile),
				errors.Is(err, appanalysis.ErrEmptyFilename),
				errors.Is(err, appanalysis.ErrUndecodable):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, identity.ErrUnauthenticated):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// POST /api/analyze
// Multipart upload with the media under the "file" field. Anonymous
// callers are accepted; a valid bearer token attaches ownership.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUploadBytes)
	if err := req.ParseMultipartForm(r.maxUploadBytes); err != nil {
		return appanalysis.ErrNoFile
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return appanalysis.ErrNoFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	if err := middleware.ValidateFilename(header.Filename); err != nil {
		return appanalysis.ErrEmptyFilename
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	result, err := r.svc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
		Owner:       middleware.IdentityFromContext(req.Context()),
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	middleware.IncrementAnalyses()
	if result.Verdict == analysis.VerdictVideoReviewPending {
		middleware.IncrementVideosDeferred()
	}

	return writeJSON(w, http.StatusOK, result)
}

// GET /api/submissions?limit=20
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.List(req.Context(), middleware.IdentityFromContext(req.Context()), limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Summary{}
	}

	return writeJSON(w, http.StatusOK, list)
}

// GET /api/submissions/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateSubmissionID(id); err != nil {
		return domain.ErrNotFound
	}

	sub, err := r.svc.Get(req.Context(), middleware.IdentityFromContext(req.Context()), domain.ID(id))
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, sub)
}

// POST /api/submissions/{id}/verify
func (r *Router) handleVerify(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateSubmissionID(id); err != nil {
		return domain.ErrNotFound
	}

	if err := r.svc.Verify(req.Context(), middleware.IdentityFromContext(req.Context()), domain.ID(id)); err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"id":       id,
		"verified": true,
	})
}
