package server

import (
	"encoding/json"
	"net/http"
)

// Route paths.
const (
	PathRoot      = "/"
	PathIndex     = "/index"
	PathIndexHTML = "/index.html"
	PathStyle     = "/style.css"
	PathFavicon   = "/favicon.png"
	PathScript    = "/script.js"
	PathHealth    = "/healthz"
)

// Content types.
const (
	ContentTypeHTML       = "text/html"
	ContentTypeCSS        = "text/css"
	ContentTypePNG        = "image/png"
	ContentTypeJavaScript = "application/javascript"
	ContentTypeJSON       = "application/json; charset=utf-8"
	ContentTypeText       = "text/plain"
)

const notFoundBody = "Not Found\n"

// Health messages.
const (
	HealthOK          = "ok"
	HealthTerminating = "terminating"
)

// Artifacts are the response bodies served by the route table.
type Artifacts struct {
	HTML    []byte
	CSS     []byte
	Favicon []byte
	Script  []byte
}

type healthResponse struct {
	Msg string `json:"msg"`
}

// staticRoute serves one precomputed body.
type staticRoute struct {
	contentType string
	body        []byte
}

// router dispatches on the exact request path. Routing is a fixed map
// lookup so unknown paths never fall through to a prefix match.
type router struct {
	static    map[string]staticRoute
	lifecycle *Lifecycle
}

func newRouter(a Artifacts, lc *Lifecycle) *router {
	page := staticRoute{contentType: ContentTypeHTML, body: a.HTML}
	return &router{
		static: map[string]staticRoute{
			PathRoot:      page,
			PathIndex:     page,
			PathIndexHTML: page,
			PathStyle:     {contentType: ContentTypeCSS, body: a.CSS},
			PathFavicon:   {contentType: ContentTypePNG, body: a.Favicon},
			PathScript:    {contentType: ContentTypeJavaScript, body: a.Script},
		},
		lifecycle: lc,
	}
}

// routeLabel maps a request path to a bounded metrics label.
func (rt *router) routeLabel(path string) string {
	if path == PathHealth {
		return PathHealth
	}
	if _, ok := rt.static[path]; ok {
		return path
	}
	return "other"
}

func (rt *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		notFound(w)
		return
	}
	if r.URL.Path == PathHealth {
		rt.serveHealth(w, r)
		return
	}
	route, ok := rt.static[r.URL.Path]
	if !ok {
		notFound(w)
		return
	}
	w.Header().Set("Content-Type", route.contentType)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(route.body)
}

func (rt *router) serveHealth(w http.ResponseWriter, r *http.Request) {
	status, msg := http.StatusOK, HealthOK
	if rt.lifecycle.Terminating() {
		status, msg = http.StatusServiceUnavailable, HealthTerminating
	}
	body, err := json.Marshal(healthResponse{Msg: msg})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeText)
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundBody))
}
