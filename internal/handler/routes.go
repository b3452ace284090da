package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes groups the handlers mounted by NewRouter.
type Routes struct {
	Base        *Handler
	Pages       *PageHandler
	Contacts    *ContactHandler
	Resume      *ResumeHandler
	Stats       *StatsHandler
	Projects    *ProjectHandler
	RateLimiter *RateLimiter

	// StaticPrefix is the URL path static assets are served under.
	StaticPrefix string
}

// NewRouter registers every route and wraps the mux in the middleware chain.
func NewRouter(rt Routes) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", rt.Pages.Index)
	mux.Handle("GET "+rt.StaticPrefix+"/", rt.Pages.Static(rt.StaticPrefix))

	mux.HandleFunc("GET /api/health", rt.Base.Health)
	mux.Handle("POST /api/contact", rt.RateLimiter.Middleware(http.HandlerFunc(rt.Contacts.Submit)))
	mux.HandleFunc("GET /api/download-resume", rt.Resume.Download)
	mux.HandleFunc("GET /api/stats", rt.Stats.Get)
	mux.HandleFunc("GET /api/projects", rt.Projects.List)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", NotFound)

	return RequestLogger(SecurityHeaders(rt.Base.CORS(mux)))
}
