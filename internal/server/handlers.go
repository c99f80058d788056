package server

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/saavnx/internal/dispatch"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
)

// MsgInvalidLimit is returned when the limit parameter is not an integer.
const MsgInvalidLimit = "Invalid limit received!"

// Dispatcher is the set of catalog operations served over HTTP.
type Dispatcher interface {
	SearchSongs(ctx context.Context, q models.RawQuery) models.Envelope
	GetSong(ctx context.Context, q models.RawQuery) models.Envelope
	GetAlbum(ctx context.Context, q models.RawQuery) models.Envelope
	GetPlaylist(ctx context.Context, q models.RawQuery) models.Envelope
	GetLyrics(ctx context.Context, q models.RawQuery) models.Envelope
	Result(ctx context.Context, q models.RawQuery) models.Envelope
}

var _ Dispatcher = (*dispatch.Dispatcher)(nil)

type endpoint struct {
	textParam string
	run       func(context.Context, models.RawQuery) models.Envelope
}

// CatalogHandler serves the catalog query endpoints.
//
// Every response is a JSON envelope written with status 200.
type CatalogHandler struct {
	endpoints map[string]endpoint
	logger    *log.Logger
}

// NewCatalogHandler creates a [CatalogHandler] over d.
func NewCatalogHandler(d Dispatcher, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{
		endpoints: map[string]endpoint{
			"/song/":     {"query", d.SearchSongs},
			"/song/get/": {"id", d.GetSong},
			"/playlist/": {"query", d.GetPlaylist},
			"/album/":    {"query", d.GetAlbum},
			"/lyrics/":   {"query", d.GetLyrics},
			"/result/":   {"query", d.Result},
		},
		logger: logger,
	}
}

// Routes returns the exact paths served by the handler.
func (h *CatalogHandler) Routes() []string {
	return []string{"/song/{$}", "/song/get/{$}", "/playlist/{$}", "/album/{$}", "/lyrics/{$}", "/result/{$}"}
}

// ServeHTTP dispatches the request to the endpoint registered for its path.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ep, ok := h.endpoints[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	q, err := ParseRawQuery(r.URL.Query(), ep.textParam)
	if err != nil {
		h.write(w, r, models.Fail(MsgInvalidLimit))
		return
	}

	h.write(w, r, ep.run(r.Context(), q))
}

func (h *CatalogHandler) write(w http.ResponseWriter, r *http.Request, env models.Envelope) {
	if env.Failed() {
		h.logger.Debug("request failed", "path", r.URL.Path, "error", env.Error, "request_id", RequestIDFrom(r.Context()))
	}
	writeJSON(w, h.logger, env)
}

// ParseRawQuery builds a [models.RawQuery] from URL parameters, reading the query text from textParam.
//
// Absent parameters stay nil. A limit that is not an integer is an error.
func ParseRawQuery(values url.Values, textParam string) (models.RawQuery, error) {
	q := models.RawQuery{Text: values.Get(textParam)}

	if v, ok := values["lyrics"]; ok && len(v) > 0 {
		q.Lyrics = &v[0]
	}
	if v, ok := values["songdata"]; ok && len(v) > 0 {
		q.SongData = &v[0]
	}
	if v, ok := values["limit"]; ok && len(v) > 0 && strings.TrimSpace(v[0]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v[0]))
		if err != nil {
			return q, shared.ErrInvalidFlag
		}
		q.Limit = &n
	}

	return q, nil
}

// HealthHandler reports that the server is up and which provider it proxies.
func HealthHandler(provider string, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := models.OK(models.Single(models.Record{"provider": provider}))
		writeJSON(w, logger, env)
	}
}

// RedirectHandler redirects to target with 307.
func RedirectHandler(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	}
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, env models.Envelope) {
	data, err := shared.MarshalJSON(env.Body(), false)
	if err != nil {
		logger.Error("failed to encode response", "error", err)
		data = []byte(`{"status":false,"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
