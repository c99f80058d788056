// JioSaavn catalog [Provider] implementation
//
// Talks to the api.php endpoints used by the jiosaavn.com web app.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultSaavnBaseURL string = "https://www.jiosaavn.com"
	defaultSaavnTimeout        = 30 * time.Second
)

// catalogDomains are the registrable domains whose links the provider follows.
var catalogDomains = []string{"saavn.com", "jiosaavn.com"}

var (
	songIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"pid":"([^"]+)"`),
	}
	albumIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"album_id":"([^"]+)"`),
		regexp.MustCompile(`"page_id","([^"]+)"`),
	}
	playlistIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"type":"playlist","id":"([^"]+)"`),
		regexp.MustCompile(`"page_id","([^"]+)"`),
	}
	numericID = regexp.MustCompile(`^[0-9]+$`)
)

// SaavnOpts configures a [SaavnService].
type SaavnOpts struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables throttling
	Burst             int
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// SaavnService implements the [Provider] interface for JioSaavn.
type SaavnService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

type searchSection struct {
	Data []models.Record `json:"data"`
}

type autocompleteResponse struct {
	Songs     searchSection `json:"songs"`
	Albums    searchSection `json:"albums"`
	Playlists searchSection `json:"playlists"`
}

// NewSaavnService creates a new JioSaavn provider.
func NewSaavnService(opts SaavnOpts) *SaavnService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultSaavnBaseURL
	}
	if opts.HTTPClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultSaavnTimeout
		}
		opts.HTTPClient = &http.Client{Timeout: timeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &SaavnService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     shared.WithLogger(opts.Logger, "provider", "saavn"),
	}
}

// NewSaavnServiceFromConfig creates a provider from the [shared.ProviderConfig] section.
func NewSaavnServiceFromConfig(cfg shared.ProviderConfig, logger *log.Logger) *SaavnService {
	return NewSaavnService(SaavnOpts{
		BaseURL:           cfg.BaseURL,
		UserAgent:         cfg.UserAgent,
		Timeout:           time.Duration(cfg.Timeout) * time.Second,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Logger:            logger,
	})
}

// Name returns the provider name.
func (s *SaavnService) Name() string {
	return "JioSaavn"
}

func (s *SaavnService) do(ctx context.Context, rawURL string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProviderFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrProviderFailure, err)
	}

	s.logger.Debug("upstream request", "url", rawURL, "status", resp.StatusCode, "elapsed", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: upstream returned 404", shared.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: upstream returned status %d", shared.ErrProviderFailure, resp.StatusCode)
	}

	return body, nil
}

// call invokes an api.php method and decodes its JSON body into result.
func (s *SaavnService) call(ctx context.Context, method string, params url.Values, result any) error {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("__call", method)
	q.Set("_format", "json")
	q.Set("_marker", "0")
	q.Set("cc", "in")

	body, err := s.do(ctx, s.baseURL+"/api.php?"+q.Encode())
	if err != nil {
		return err
	}

	if err := decodeJSON(body, result); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", shared.ErrProviderFailure, method, err)
	}
	return nil
}

// decodeJSON decodes body, skipping any markup the API prepends to the payload.
//
// Numbers are kept as [json.Number] so ids survive a round trip untouched.
func decodeJSON(body []byte, v any) error {
	if i := bytes.IndexAny(body, "{["); i > 0 {
		body = body[i:]
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}

func (s *SaavnService) autocomplete(ctx context.Context, query string) (*autocompleteResponse, error) {
	var resp autocompleteResponse
	params := url.Values{"query": {query}, "includeMetaTags": {"1"}}
	if err := s.call(ctx, "autocomplete.get", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchSongs searches songs by free text.
//
// A song link resolves to that song. With songData set each hit is expanded into its full,
// formatted song record; otherwise the raw search entries are returned.
func (s *SaavnService) SearchSongs(ctx context.Context, query string, lyrics, songData bool) (models.Result, error) {
	if isCatalogLink(query) {
		id, err := s.SongIDFromURL(ctx, query)
		if err != nil {
			return models.Result{}, err
		}
		song, err := s.GetSong(ctx, id, lyrics)
		if err != nil {
			return models.Result{}, err
		}
		if song == nil {
			return models.Result{}, fmt.Errorf("%w: song %s", shared.ErrNotFound, id)
		}
		return models.Single(song), nil
	}

	resp, err := s.autocomplete(ctx, query)
	if err != nil {
		return models.Result{}, err
	}

	entries := resp.Songs.Data
	if !songData {
		items := make([]any, len(entries))
		for i, entry := range entries {
			items[i] = map[string]any(entry)
		}
		return models.List(items), nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if id := entry.String("id"); id != "" {
			ids = append(ids, id)
		}
	}

	details, err := s.songDetails(ctx, ids)
	if err != nil {
		return models.Result{}, err
	}

	items := make([]any, 0, len(ids))
	for _, id := range ids {
		song, ok := details[id]
		if !ok {
			continue
		}
		items = append(items, map[string]any(s.formatSong(ctx, song, lyrics)))
	}

	return models.List(items), nil
}

// songDetails fetches song records for ids in a single song.getDetails call, keyed by id.
func (s *SaavnService) songDetails(ctx context.Context, ids []string) (map[string]models.Record, error) {
	out := make(map[string]models.Record, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var raw any
	if err := s.call(ctx, "song.getDetails", url.Values{"pids": {strings.Join(ids, ",")}}, &raw); err != nil {
		return nil, err
	}

	root, ok := raw.(map[string]any)
	if !ok {
		return out, nil
	}

	if songs, ok := root["songs"].([]any); ok {
		for _, item := range songs {
			if m, ok := item.(map[string]any); ok {
				if id := models.Record(m).String("id"); id != "" {
					out[id] = m
				}
			}
		}
		return out, nil
	}

	for key, item := range root {
		if m, ok := item.(map[string]any); ok {
			out[key] = m
		}
	}
	return out, nil
}

// GetSong fetches and formats a single song.
//
// Unknown ids yield a nil record and a nil error.
func (s *SaavnService) GetSong(ctx context.Context, id string, lyrics bool) (models.Record, error) {
	details, err := s.songDetails(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	song, ok := details[id]
	if !ok || len(song) == 0 {
		return nil, nil
	}
	return s.formatSong(ctx, song, lyrics), nil
}

// SongIDFromURL resolves a song link to its pid.
//
// The song page is read first; the webapi.get token endpoint is the fallback.
func (s *SaavnService) SongIDFromURL(ctx context.Context, link string) (string, error) {
	target, err := s.pageURL(link)
	if err != nil {
		return "", err
	}

	if page, err := s.do(ctx, target); err == nil {
		if id := firstMatch(page, songIDPatterns); id != "" {
			return id, nil
		}
	} else {
		s.logger.Debug("song page lookup failed", "link", link, "error", err)
	}

	token := lastSegment(link)
	if token == "" {
		return "", fmt.Errorf("%w: no song id in %s", shared.ErrNotFound, link)
	}

	var resp struct {
		Songs []models.Record `json:"songs"`
	}
	params := url.Values{"token": {token}, "type": {"song"}}
	if err := s.call(ctx, "webapi.get", params, &resp); err != nil {
		return "", err
	}
	for _, song := range resp.Songs {
		if id := song.String("id"); id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: no song id in %s", shared.ErrNotFound, link)
}

// AlbumIDFromQuery resolves an album link, numeric id or album name to an album id.
func (s *SaavnService) AlbumIDFromQuery(ctx context.Context, query string) (string, error) {
	return s.collectionID(ctx, query, "album", albumIDPatterns, func(r *autocompleteResponse) []models.Record {
		return r.Albums.Data
	})
}

// PlaylistIDFromQuery resolves a playlist link, numeric id or playlist name to a playlist id.
func (s *SaavnService) PlaylistIDFromQuery(ctx context.Context, query string) (string, error) {
	return s.collectionID(ctx, query, "playlist", playlistIDPatterns, func(r *autocompleteResponse) []models.Record {
		return r.Playlists.Data
	})
}

func (s *SaavnService) collectionID(
	ctx context.Context, query, kind string, patterns []*regexp.Regexp, pick func(*autocompleteResponse) []models.Record,
) (string, error) {
	query = strings.TrimSpace(query)

	switch {
	case query == "":
		return "", fmt.Errorf("%w: empty %s query", shared.ErrInvalidInput, kind)
	case isCatalogLink(query):
		target, err := s.pageURL(query)
		if err != nil {
			return "", err
		}
		page, err := s.do(ctx, target)
		if err != nil {
			return "", err
		}
		if id := firstMatch(page, patterns); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("%w: no %s id in %s", shared.ErrNotFound, kind, query)
	case numericID.MatchString(query):
		return query, nil
	}

	resp, err := s.autocomplete(ctx, query)
	if err != nil {
		return "", err
	}
	if id := bestMatch(query, pick(resp)); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: no %s matches %q", shared.ErrNotFound, kind, query)
}

// GetAlbum fetches an album and formats its songs.
func (s *SaavnService) GetAlbum(ctx context.Context, id string, lyrics bool) (models.Result, error) {
	var raw any
	if err := s.call(ctx, "content.getAlbumDetails", url.Values{"albumid": {id}}, &raw); err != nil {
		return models.Result{}, err
	}
	return s.collection(ctx, raw, lyrics, "album "+id, "name", "primary_artists", "title")
}

// GetPlaylist fetches a playlist and formats its songs.
func (s *SaavnService) GetPlaylist(ctx context.Context, id string, lyrics bool) (models.Result, error) {
	var raw any
	if err := s.call(ctx, "playlist.getDetails", url.Values{"listid": {id}}, &raw); err != nil {
		return models.Result{}, err
	}
	return s.collection(ctx, raw, lyrics, "playlist "+id, "firstname", "listname", "title")
}

// collection shapes an album/playlist payload. Objects become composite results; a bare
// array is treated as the songs list itself.
func (s *SaavnService) collection(ctx context.Context, raw any, lyrics bool, what string, textFields ...string) (models.Result, error) {
	switch v := raw.(type) {
	case map[string]any:
		rec := models.Record(v)
		songs, hasSongs := rec.Songs()
		if msg := upstreamError(rec); msg != "" && !hasSongs {
			return models.Result{}, fmt.Errorf("%w: %s: %s", shared.ErrNotFound, what, msg)
		}
		if len(rec) == 0 {
			return models.Result{}, fmt.Errorf("%w: %s", shared.ErrNotFound, what)
		}

		upscaleImage(rec)
		cleanFields(rec, textFields...)
		for _, item := range songs {
			if song, ok := item.(map[string]any); ok {
				s.formatSong(ctx, song, lyrics)
			}
		}
		return models.Composite(rec), nil
	case []any:
		for _, item := range v {
			if song, ok := item.(map[string]any); ok {
				s.formatSong(ctx, song, lyrics)
			}
		}
		return models.List(v), nil
	default:
		return models.Result{}, fmt.Errorf("%w: %s", shared.ErrNotFound, what)
	}
}

// GetLyrics fetches the lyrics of a song id.
func (s *SaavnService) GetLyrics(ctx context.Context, id string) (string, error) {
	var resp struct {
		Lyrics string `json:"lyrics"`
		Status string `json:"status"`
		Error  any    `json:"error"`
	}
	params := url.Values{"lyrics_id": {id}, "ctx": {"web6dot0"}, "api_version": {"4"}}
	if err := s.call(ctx, "lyrics.getLyrics", params, &resp); err != nil {
		return "", err
	}

	if resp.Lyrics == "" {
		msg := upstreamError(models.Record{"error": resp.Error, "status": resp.Status})
		if msg == "" {
			msg = "no lyrics available"
		}
		return "", fmt.Errorf("%w: lyrics for %s: %s", shared.ErrNotFound, id, msg)
	}
	return resp.Lyrics, nil
}

// pageURL maps a catalog link onto the configured base URL.
func (s *SaavnService) pageURL(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || !isCatalogHost(u.Hostname()) {
		return "", fmt.Errorf("%w: %s", shared.ErrUnsupportedLink, link)
	}
	return s.baseURL + u.EscapedPath(), nil
}

func isCatalogHost(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range catalogDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// isCatalogLink reports whether s is an http(s) link on a catalog host.
func isCatalogLink(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && isCatalogHost(u.Hostname())
}

func lastSegment(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	return parts[len(parts)-1]
}

func firstMatch(page []byte, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindSubmatch(page); len(m) > 1 && len(m[1]) > 0 {
			return string(m[1])
		}
	}
	return ""
}

// bestMatch returns the id of the candidate whose title is closest to query.
//
// Ties keep the provider's ranking.
func bestMatch(query string, candidates []models.Record) string {
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false

	var bestID string
	best := -1.0
	for _, c := range candidates {
		id := c.String("id")
		if id == "" {
			continue
		}
		score := strutil.Similarity(query, cleanText(c.String("title")), jw)
		if score > best {
			best = score
			bestID = id
		}
	}
	return bestID
}

// upstreamError extracts an error message from an API payload, if it carries one.
func upstreamError(rec models.Record) string {
	switch e := rec["error"].(type) {
	case string:
		return e
	case map[string]any:
		if msg := models.Record(e).String("msg"); msg != "" {
			return msg
		}
		return "unknown error"
	}
	if rec.String("status") == "failure" {
		return "request failed"
	}
	return ""
}

// IsNotFound reports whether err means the catalog has no matching record.
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
