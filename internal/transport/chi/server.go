package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
	"github.com/kailas-cloud/companysearch/internal/logger"
	healthuc "github.com/kailas-cloud/companysearch/internal/usecase/health"
	taguc "github.com/kailas-cloud/companysearch/internal/usecase/tag"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// SearchService runs the search pipeline.
type SearchService interface {
	Search(ctx context.Context, req *request.Request) (*result.SearchResult, error)
}

// TagService manages saved filter tags.
type TagService interface {
	Create(ctx context.Context, userID, name string, snap domtag.Snapshot) (domtag.Tag, error)
	List(ctx context.Context, userID string) ([]domtag.Tag, error)
	Delete(ctx context.Context, userID, tagID string) error
	Apply(ctx context.Context, userID, tagID string, p taguc.ApplyParams) (*result.SearchResult, error)
}

// RegionLister exposes the declared regions.
type RegionLister interface {
	All() []region.Region
}

// HealthChecker aggregates component checks.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server is the HTTP API.
type Server struct {
	search        SearchService
	tags          TagService
	regions       RegionLister
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search SearchService,
	tags TagService,
	regions RegionLister,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		tags:    tags,
		regions: regions,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		kindHandler(domain.KindValidation, http.StatusBadRequest, ErrorCodeValidationFailed),
		kindHandler(domain.KindNotFound, http.StatusNotFound, ErrorCodeNotFound),
		kindHandler(domain.KindConflict, http.StatusConflict, ErrorCodeConflict),
		kindHandler(domain.KindUpstreamUnavailable, http.StatusServiceUnavailable, ErrorCodeUpstreamUnavailable),
		deadlineHandler,
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.Search)
	r.Get("/regions", s.ListRegions)
	r.Route("/tags/{user_id}", func(r chi.Router) {
		r.Get("/", s.ListTags)
		r.Post("/", s.CreateTag)
		r.Delete("/{tag_id}", s.DeleteTag)
		r.Post("/{tag_id}/search", s.ApplyTag)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Handler returns a router serving the API without extra middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !s.decode(w, r, &body) {
		return
	}
	req, err := searchRequestFromAPI(body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultToAPI(res))
}

// ListRegions handles GET /regions.
func (s *Server) ListRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, regionsToAPI(s.regions.All()))
}

// ListTags handles GET /tags/{user_id}.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathParam(w, r, "user_id")
	if !ok {
		return
	}
	tags, err := s.tags.List(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	items := make([]Tag, len(tags))
	for i := range tags {
		items[i] = tagToAPI(&tags[i])
	}
	writeJSON(w, http.StatusOK, TagListResponse{Tags: items})
}

// CreateTag handles POST /tags/{user_id}.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathParam(w, r, "user_id")
	if !ok {
		return
	}
	var body CreateTagRequest
	if !s.decode(w, r, &body) {
		return
	}
	t, err := s.tags.Create(r.Context(), userID, body.Name, snapshotFromAPI(body.FilterSnapshot))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tagToAPI(&t))
}

// DeleteTag handles DELETE /tags/{user_id}/{tag_id}.
func (s *Server) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathParam(w, r, "user_id")
	if !ok {
		return
	}
	tagID, ok := s.pathParam(w, r, "tag_id")
	if !ok {
		return
	}
	if err := s.tags.Delete(r.Context(), userID, tagID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyTag handles POST /tags/{user_id}/{tag_id}/search.
func (s *Server) ApplyTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathParam(w, r, "user_id")
	if !ok {
		return
	}
	tagID, ok := s.pathParam(w, r, "tag_id")
	if !ok {
		return
	}
	var body ApplyTagRequest
	if !s.decode(w, r, &body) {
		return
	}
	res, err := s.tags.Apply(r.Context(), userID, tagID, taguc.ApplyParams{
		Query:  body.Query,
		Locale: body.Locale,
		Page:   body.Page,
		Size:   body.Size,
		Sort:   sortkey.Key(body.Sort),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultToAPI(res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v. An empty body leaves v zero.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathParam binds a simple-style path parameter the way generated oapi handlers do.
func (s *Server) pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
			fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		return "", false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// kindHandler returns an errorHandler for one domain error kind.
// The message is the domain error's own text, never the wrapped cause.
func kindHandler(kind domain.Kind, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		de, ok := domain.AsError(err)
		if !ok || de.Kind != kind {
			return false
		}
		writeJSON(w, status, ErrorResponse{Code: code, Message: de.Error(), Field: de.Field})
		return true
	}
}

// deadlineHandler maps an expired request deadline to upstream_unavailable.
func deadlineHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	writeError(w, http.StatusServiceUnavailable, ErrorCodeUpstreamUnavailable, domain.ErrUpstreamUnavailable.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
