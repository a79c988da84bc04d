package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/statica"
)

type Service interface {
	Serve(ctx context.Context, req statica.Request) statica.Response
	Root() statica.StaticRoot
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" validate:"min=0"`
}

type HandlerConfig struct {
	CORS   CORSConfig
	Logger *slog.Logger
}

// Handler serves a static root over net/http.
type Handler struct {
	config  HandlerConfig
	service Service
	logger  *slog.Logger
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		config:  *config,
		service: service,
		logger:  logger,
	}
}

// Router returns an http.Handler serving the static root at its mount prefix.
// Every method is routed to the service so that it can answer 405 itself.
// Paths outside the mount prefix get a plain 404.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(AccessLog(h.logger))

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	prefix := strings.TrimSuffix(h.service.Root().Prefix(), "/")
	if prefix != "" {
		r.HandleFunc(prefix, h.handleServe)
	}
	r.HandleFunc(prefix+"/*", h.handleServe)

	r.NotFound(writeNotFound)

	return r
}

func (h *Handler) handleServe(w http.ResponseWriter, r *http.Request) {
	resp := h.service.Serve(r.Context(), NewRequest(r))

	if err := WriteResponse(r.Context(), w, resp); err != nil {
		h.logger.WarnContext(r.Context(), "write response",
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()),
			"err", err,
		)
	}
}

// NewRequest converts an incoming request into a statica.Request. The route suffix
// is the chi wildcard capture, decoded like the request path.
func NewRequest(r *http.Request) statica.Request {
	headers := make(statica.Headers, 0, len(r.Header))
	for name, values := range r.Header {
		for _, v := range values {
			headers = headers.Add(name, v)
		}
	}

	return statica.Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		RouteSuffix: routeSuffix(r),
		Headers:     headers,
	}
}

func routeSuffix(r *http.Request) string {
	suffix := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return suffix
	}

	// chi routes on RawPath when it is set, so the capture is still escaped.
	decoded, err := url.PathUnescape(suffix)
	if err != nil {
		return suffix
	}
	return decoded
}
