package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/desertthunder/saavnx/internal/dispatch"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
	tu "github.com/desertthunder/saavnx/internal/testing"
)

func newTestServer(p *tu.MockProvider) *Server {
	logger := shared.NewLogger(io.Discard)
	cfg := shared.DefaultConfig().Server
	return NewServer(cfg, dispatch.NewDispatcher(p, logger), p.Name(), logger)
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body any
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
		}
	}
	return rec, body
}

func TestParseRawQuery(t *testing.T) {
	t.Run("Absent Parameters", func(t *testing.T) {
		q, err := ParseRawQuery(url.Values{"query": {"tum hi ho"}}, "query")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if q.Text != "tum hi ho" || q.Lyrics != nil || q.SongData != nil || q.Limit != nil {
			t.Errorf("unexpected query %+v", q)
		}
	})

	t.Run("Present Parameters", func(t *testing.T) {
		values := url.Values{"id": {"abc"}, "lyrics": {""}, "songdata": {"false"}, "limit": {" 7 "}}
		q, err := ParseRawQuery(values, "id")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if q.Text != "abc" || q.Lyrics == nil || *q.Lyrics != "" || *q.SongData != "false" || *q.Limit != 7 {
			t.Errorf("unexpected query %+v", q)
		}
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		if _, err := ParseRawQuery(url.Values{"limit": {"ten"}}, "query"); err == nil {
			t.Error("expected error for non-numeric limit")
		}
	})
}

func TestCatalogEndpoints(t *testing.T) {
	t.Run("Search", func(t *testing.T) {
		provider := &tu.MockProvider{
			SearchSongsFn: func(_ context.Context, q string, lyrics, songData bool) (models.Result, error) {
				if q != "Tum Hi Ho" || lyrics || !songData {
					t.Errorf("unexpected search args %q %v %v", q, lyrics, songData)
				}
				return models.List(tu.Songs(5)), nil
			},
		}

		rec, body := get(t, newTestServer(provider).Handler(), "/song/?query=Tum+Hi+Ho&limit=2")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		items, ok := body.([]any)
		if !ok || len(items) != 2 {
			t.Errorf("expected array of 2, got %v", body)
		}
	})

	t.Run("Missing Query", func(t *testing.T) {
		_, body := get(t, newTestServer(&tu.MockProvider{}).Handler(), "/song/")

		env := body.(map[string]any)
		if env["status"] != false || env["error"] != dispatch.MsgSearchQueryRequired {
			t.Errorf("unexpected body %v", env)
		}
	})

	t.Run("Song Get Reads Id", func(t *testing.T) {
		provider := &tu.MockProvider{
			GetSongFn: func(_ context.Context, id string, lyrics bool) (models.Record, error) {
				if id != "abc" || !lyrics {
					t.Errorf("unexpected args %q %v", id, lyrics)
				}
				return models.Record{"id": id, "song": "Tum Hi Ho"}, nil
			},
		}

		_, body := get(t, newTestServer(provider).Handler(), "/song/get/?id=abc&lyrics=true")
		env := body.(map[string]any)
		if env["status"] != true || env["song"] != "Tum Hi Ho" {
			t.Errorf("unexpected body %v", env)
		}
	})

	t.Run("Invalid Song Id", func(t *testing.T) {
		rec, body := get(t, newTestServer(&tu.MockProvider{}).Handler(), "/song/get/?id=nope")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for a failure envelope, got %d", rec.Code)
		}
		if body.(map[string]any)["error"] != dispatch.MsgInvalidSongID {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		provider := &tu.MockProvider{}
		_, body := get(t, newTestServer(provider).Handler(), "/album/?query=x&limit=lots")

		if body.(map[string]any)["error"] != MsgInvalidLimit {
			t.Errorf("unexpected body %v", body)
		}
		if len(provider.Calls()) != 0 {
			t.Error("expected provider not to be called")
		}
	})

	t.Run("Playlist", func(t *testing.T) {
		provider := &tu.MockProvider{
			PlaylistIDFromQueryFn: func(context.Context, string) (string, error) { return "p1", nil },
			GetPlaylistFn: func(context.Context, string, bool) (models.Result, error) {
				return models.Composite(models.Record{"listname": "Top", "songs": tu.Songs(10)}), nil
			},
		}

		target := "/playlist/?query=" + url.QueryEscape("https://www.jiosaavn.com/featured/top/tok") + "&limit=5"
		_, body := get(t, newTestServer(provider).Handler(), target)
		songs := body.(map[string]any)["songs"].([]any)
		if len(songs) != 5 {
			t.Errorf("expected 5 songs, got %d", len(songs))
		}
	})

	t.Run("Lyrics", func(t *testing.T) {
		provider := &tu.MockProvider{
			GetLyricsFn: func(context.Context, string) (string, error) { return "la la", nil },
		}

		_, body := get(t, newTestServer(provider).Handler(), "/lyrics/?query=abc")
		env := body.(map[string]any)
		if env["status"] != true || env["lyrics"] != "la la" {
			t.Errorf("unexpected body %v", env)
		}
	})

	t.Run("Result Without Known Path", func(t *testing.T) {
		target := "/result/?query=" + url.QueryEscape("https://www.jiosaavn.com/artist/x")
		_, body := get(t, newTestServer(&tu.MockProvider{}).Handler(), target)

		env := body.(map[string]any)
		if env["status"] != false || len(env) != 1 {
			t.Errorf("expected bare status false, got %v", env)
		}
	})

	t.Run("Method Not Allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(&tu.MockProvider{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/song/", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Panicking Provider", func(t *testing.T) {
		provider := &tu.MockProvider{
			GetLyricsFn: func(context.Context, string) (string, error) { panic("bad payload") },
		}

		rec, body := get(t, newTestServer(provider).Handler(), "/lyrics/?query=abc")
		if rec.Code != http.StatusOK || body.(map[string]any)["status"] != false {
			t.Errorf("expected failure envelope, got %d %v", rec.Code, body)
		}
	})
}

func TestAuxiliaryRoutes(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		_, body := get(t, newTestServer(&tu.MockProvider{}).Handler(), "/health")
		env := body.(map[string]any)
		if env["status"] != true || env["provider"] != "mock" {
			t.Errorf("unexpected body %v", env)
		}
	})

	t.Run("Root Redirects To Docs", func(t *testing.T) {
		rec, _ := get(t, newTestServer(&tu.MockProvider{}).Handler(), "/")
		if rec.Code != http.StatusTemporaryRedirect {
			t.Errorf("expected 307, got %d", rec.Code)
		}
		if rec.Header().Get("Location") != shared.DefaultConfig().Server.DocsURL {
			t.Errorf("unexpected location %q", rec.Header().Get("Location"))
		}
	})

	t.Run("Unknown Path", func(t *testing.T) {
		rec, _ := get(t, newTestServer(&tu.MockProvider{}).Handler(), "/nothing")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Request Id Header", func(t *testing.T) {
		rec, _ := get(t, newTestServer(&tu.MockProvider{}).Handler(), "/health")
		if rec.Header().Get(RequestIDHeader) == "" {
			t.Error("expected request id header")
		}
	})
}

func TestServerServe(t *testing.T) {
	srv := newTestServer(&tu.MockProvider{})
	ln, err := newLocalListener()
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}

func newLocalListener() (net.Listener, error) {
	return net.Listen("tcp", "127.0.0.1:0")
}
