package services

import (
	"bytes"
	"context"
	"crypto/des"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
)

// fakeCatalog serves api.php methods and catalog pages from canned bodies.
type fakeCatalog struct {
	mu      sync.Mutex
	methods map[string]func(r *http.Request) string
	pages   map[string]string
	calls   []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{methods: map[string]func(*http.Request) string{}, pages: map[string]string{}}
}

func (f *fakeCatalog) on(method, body string) {
	f.methods[method] = func(*http.Request) string { return body }
}

func (f *fakeCatalog) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api.php" {
		method := r.URL.Query().Get("__call")
		f.mu.Lock()
		f.calls = append(f.calls, method)
		f.mu.Unlock()

		if r.URL.Query().Get("_format") != "json" || r.URL.Query().Get("cc") != "in" {
			http.Error(w, "missing base params", http.StatusBadRequest)
			return
		}
		if h, ok := f.methods[method]; ok {
			w.Write([]byte(h(r)))
			return
		}
		http.NotFound(w, r)
		return
	}

	if page, ok := f.pages[r.URL.Path]; ok {
		w.Write([]byte(page))
		return
	}
	http.NotFound(w, r)
}

func newTestService(t *testing.T, h http.Handler) *SaavnService {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewSaavnService(SaavnOpts{BaseURL: server.URL, Logger: shared.NewLogger(io.Discard)})
}

func encryptMediaURL(t *testing.T, plain string) string {
	t.Helper()
	block, err := des.NewCipher(mediaKey)
	if err != nil {
		t.Fatalf("failed to create cipher: %v", err)
	}
	pad := des.BlockSize - len(plain)%des.BlockSize
	data := append([]byte(plain), bytes.Repeat([]byte{byte(pad)}, pad)...)
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += des.BlockSize {
		block.Encrypt(out[i:i+des.BlockSize], data[i:i+des.BlockSize])
	}
	return base64.StdEncoding.EncodeToString(out)
}

func TestDecryptMediaURL(t *testing.T) {
	t.Run("Decrypts And Upgrades Bitrate", func(t *testing.T) {
		enc := encryptMediaURL(t, "https://aac.saavncdn.com/123/abc_96.mp4")

		got, err := decryptMediaURL(enc)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "https://aac.saavncdn.com/123/abc_320.mp4" {
			t.Errorf("unexpected url %q", got)
		}
	})

	t.Run("Invalid Base64", func(t *testing.T) {
		if _, err := decryptMediaURL("%%%"); err == nil {
			t.Error("expected error for invalid base64")
		}
	})

	t.Run("Invalid Length", func(t *testing.T) {
		if _, err := decryptMediaURL(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
			t.Error("expected error for non block-aligned input")
		}
	})
}

func TestFormatting(t *testing.T) {
	t.Run("Clean Text", func(t *testing.T) {
		got := cleanText("Tom &amp; Jerry &quot;Live&quot; &#039;99")
		if got != "Tom & Jerry 'Live' '99" {
			t.Errorf("unexpected text %q", got)
		}
	})

	t.Run("Media URLs From Encrypted URL", func(t *testing.T) {
		enc := encryptMediaURL(t, "https://aac.saavncdn.com/123/abc_96.mp4")

		t.Run("High Quality", func(t *testing.T) {
			song := models.Record{"encrypted_media_url": enc, "320kbps": "true"}
			if err := setMediaURLs(song); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if song.String("media_url") != "https://aac.saavncdn.com/123/abc_320.mp4" {
				t.Errorf("unexpected media_url %q", song.String("media_url"))
			}
			if song.String("media_preview_url") != "https://preview.saavncdn.com/123/abc_96_p.mp4" {
				t.Errorf("unexpected media_preview_url %q", song.String("media_preview_url"))
			}
		})

		t.Run("Standard Quality", func(t *testing.T) {
			song := models.Record{"encrypted_media_url": enc, "320kbps": "false"}
			if err := setMediaURLs(song); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if song.String("media_url") != "https://aac.saavncdn.com/123/abc_160.mp4" {
				t.Errorf("unexpected media_url %q", song.String("media_url"))
			}
		})
	})

	t.Run("Media URL From Preview", func(t *testing.T) {
		song := models.Record{"media_preview_url": "https://preview.saavncdn.com/1/a_96_p.mp4", "320kbps": "true"}
		if err := setMediaURLs(song); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if song.String("media_url") != "https://aac.saavncdn.com/1/a_320.mp4" {
			t.Errorf("unexpected media_url %q", song.String("media_url"))
		}
	})

	t.Run("No Media Fields", func(t *testing.T) {
		song := models.Record{"id": "x"}
		if err := setMediaURLs(song); err != nil {
			t.Errorf("expected no error without media fields, got %v", err)
		}
		if _, ok := song["media_url"]; ok {
			t.Error("expected media_url to stay unset")
		}
	})

	t.Run("Format Song", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.on("lyrics.getLyrics", `{"lyrics":"la la la"}`)
		svc := newTestService(t, catalog)

		song := models.Record{
			"id":             "s1",
			"song":           "Rock &amp; Roll",
			"image":          "https://c.saavncdn.com/a-150x150.jpg",
			"copyright_text": "&copy; 2019 Label",
			"has_lyrics":     "true",
		}
		got := svc.formatSong(context.Background(), song, true)

		if got.String("song") != "Rock & Roll" {
			t.Errorf("unexpected song %q", got.String("song"))
		}
		if got.String("image") != "https://c.saavncdn.com/a-500x500.jpg" {
			t.Errorf("unexpected image %q", got.String("image"))
		}
		if got.String("copyright_text") != "© 2019 Label" {
			t.Errorf("unexpected copyright %q", got.String("copyright_text"))
		}
		if got.String("lyrics") != "la la la" {
			t.Errorf("unexpected lyrics %v", got["lyrics"])
		}
	})

	t.Run("Format Song Without Lyrics Available", func(t *testing.T) {
		catalog := newFakeCatalog()
		svc := newTestService(t, catalog)

		got := svc.formatSong(context.Background(), models.Record{"id": "s1", "has_lyrics": "false"}, true)
		if v, ok := got["lyrics"]; !ok || v != nil {
			t.Errorf("expected null lyrics, got %v (present %v)", v, ok)
		}
		if catalog.called("lyrics.getLyrics") != 0 {
			t.Error("expected no lyrics request")
		}
	})
}

func TestSaavnService(t *testing.T) {
	ctx := context.Background()

	t.Run("New", func(t *testing.T) {
		svc := NewSaavnService(SaavnOpts{})
		if svc.baseURL != "https://www.jiosaavn.com" {
			t.Errorf("expected default base URL, got %s", svc.baseURL)
		}
		if svc.Name() != "JioSaavn" {
			t.Errorf("unexpected name %s", svc.Name())
		}
	})

	t.Run("From Config", func(t *testing.T) {
		cfg := shared.DefaultConfig().Provider
		cfg.BaseURL = "http://localhost:9999/"
		svc := NewSaavnServiceFromConfig(cfg, shared.NewLogger(io.Discard))
		if svc.baseURL != "http://localhost:9999" {
			t.Errorf("unexpected base URL %s", svc.baseURL)
		}
		if svc.userAgent != cfg.UserAgent {
			t.Errorf("expected user agent %q, got %q", cfg.UserAgent, svc.userAgent)
		}
	})

	t.Run("SearchSongs", func(t *testing.T) {
		t.Run("Raw Entries", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("autocomplete.get", `{"songs":{"data":[{"id":"a","title":"A &amp; B"},{"id":"b","title":"C"}]}}`)
			svc := newTestService(t, catalog)

			result, err := svc.SearchSongs(ctx, "a", false, false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Shape != models.ShapeList || len(result.Items) != 2 {
				t.Fatalf("expected list of 2, got %v with %d items", result.Shape, len(result.Items))
			}
			first := result.Items[0].(map[string]any)
			if first["title"] != "A &amp; B" {
				t.Errorf("expected raw entry untouched, got %v", first["title"])
			}
			if catalog.called("song.getDetails") != 0 {
				t.Error("expected no details request")
			}
		})

		t.Run("Song Data Keeps Search Order", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("autocomplete.get", `{"songs":{"data":[{"id":"a"},{"id":"b"},{"id":"missing"}]}}`)
			catalog.methods["song.getDetails"] = func(r *http.Request) string {
				if r.URL.Query().Get("pids") != "a,b,missing" {
					t.Errorf("unexpected pids %q", r.URL.Query().Get("pids"))
				}
				return `{"b":{"id":"b","song":"Second"},"a":{"id":"a","song":"First &amp; Best","image":"x-150x150.jpg"}}`
			}
			svc := newTestService(t, catalog)

			result, err := svc.SearchSongs(ctx, "q", false, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.Items) != 2 {
				t.Fatalf("expected 2 songs, got %d", len(result.Items))
			}
			first := result.Items[0].(map[string]any)
			if first["id"] != "a" || first["song"] != "First & Best" || first["image"] != "x-500x500.jpg" {
				t.Errorf("unexpected first song %v", first)
			}
			if result.Items[1].(map[string]any)["id"] != "b" {
				t.Errorf("expected second song b, got %v", result.Items[1])
			}
		})

		t.Run("Songs Envelope From Details", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("autocomplete.get", `{"songs":{"data":[{"id":"a"}]}}`)
			catalog.on("song.getDetails", `{"songs":[{"id":"a","song":"Only"}]}`)
			svc := newTestService(t, catalog)

			result, err := svc.SearchSongs(ctx, "q", false, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.Items) != 1 {
				t.Errorf("expected 1 song, got %d", len(result.Items))
			}
		})

		t.Run("Song Link Resolves Single Song", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.pages["/song/tum-hi-ho/abc"] = `<script>{"pid":"s9"}</script>`
			catalog.on("song.getDetails", `{"s9":{"id":"s9","song":"Tum Hi Ho"}}`)
			svc := newTestService(t, catalog)

			result, err := svc.SearchSongs(ctx, "https://www.jiosaavn.com/song/tum-hi-ho/abc", false, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Shape != models.ShapeSingle || result.Record.String("id") != "s9" {
				t.Errorf("unexpected result %+v", result)
			}
		})

		t.Run("Provider Failure", func(t *testing.T) {
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))

			_, err := svc.SearchSongs(ctx, "q", false, true)
			if !errors.Is(err, shared.ErrProviderFailure) {
				t.Errorf("expected ErrProviderFailure, got %v", err)
			}
		})

		t.Run("Undecodable Body", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("autocomplete.get", `not json`)
			svc := newTestService(t, catalog)

			_, err := svc.SearchSongs(ctx, "q", false, false)
			if !errors.Is(err, shared.ErrProviderFailure) {
				t.Errorf("expected ErrProviderFailure, got %v", err)
			}
		})

		t.Run("Markup Before Payload", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("autocomplete.get", "<!-- cached -->\n"+`{"songs":{"data":[{"id":"a"}]}}`)
			svc := newTestService(t, catalog)

			result, err := svc.SearchSongs(ctx, "q", false, false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(result.Items) != 1 {
				t.Errorf("expected 1 entry, got %d", len(result.Items))
			}
		})
	})

	t.Run("GetSong", func(t *testing.T) {
		t.Run("Known Id", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("song.getDetails", `{"s1":{"id":"s1","album":"A &amp; B"}}`)
			svc := newTestService(t, catalog)

			song, err := svc.GetSong(ctx, "s1", false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if song.String("album") != "A & B" {
				t.Errorf("unexpected album %q", song.String("album"))
			}
			if _, ok := song["lyrics"]; ok {
				t.Error("expected no lyrics field when lyrics are not requested")
			}
		})

		t.Run("Unknown Id", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("song.getDetails", `[]`)
			svc := newTestService(t, catalog)

			song, err := svc.GetSong(ctx, "nope", false)
			if err != nil || song != nil {
				t.Errorf("expected nil record and nil error, got %v, %v", song, err)
			}
		})
	})

	t.Run("SongIDFromURL", func(t *testing.T) {
		t.Run("From Page", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.pages["/song/name/tok"] = `..."pid":"XYZ"...`
			svc := newTestService(t, catalog)

			id, err := svc.SongIDFromURL(ctx, "https://www.jiosaavn.com/song/name/tok")
			if err != nil || id != "XYZ" {
				t.Errorf("expected XYZ, got %q (%v)", id, err)
			}
		})

		t.Run("Token Fallback", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.methods["webapi.get"] = func(r *http.Request) string {
				if r.URL.Query().Get("token") != "tok" || r.URL.Query().Get("type") != "song" {
					t.Errorf("unexpected webapi params %v", r.URL.Query())
				}
				return `{"songs":[{"id":"T1"}]}`
			}
			svc := newTestService(t, catalog)

			id, err := svc.SongIDFromURL(ctx, "https://www.saavn.com/s/song/name/tok")
			if err != nil || id != "T1" {
				t.Errorf("expected T1, got %q (%v)", id, err)
			}
		})

		t.Run("No Id Anywhere", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("webapi.get", `{"songs":[]}`)
			svc := newTestService(t, catalog)

			_, err := svc.SongIDFromURL(ctx, "https://www.jiosaavn.com/song/name/tok")
			if !IsNotFound(err) {
				t.Errorf("expected not found, got %v", err)
			}
		})

		t.Run("Foreign Host", func(t *testing.T) {
			catalog := newFakeCatalog()
			svc := newTestService(t, catalog)

			_, err := svc.SongIDFromURL(ctx, "https://example.com/song/name/tok")
			if !errors.Is(err, shared.ErrUnsupportedLink) {
				t.Errorf("expected ErrUnsupportedLink, got %v", err)
			}
			if len(catalog.calls) != 0 {
				t.Error("expected no upstream calls")
			}
		})
	})

	t.Run("AlbumIDFromQuery", func(t *testing.T) {
		t.Run("Numeric Id", func(t *testing.T) {
			catalog := newFakeCatalog()
			svc := newTestService(t, catalog)

			id, err := svc.AlbumIDFromQuery(ctx, " 1234 ")
			if err != nil || id != "1234" {
				t.Errorf("expected 1234, got %q (%v)", id, err)
			}
			if catalog.called("autocomplete.get") != 0 {
				t.Error("expected no search for a numeric id")
			}
		})

		t.Run("Best Title Match", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("autocomplete.get", `{"albums":{"data":[{"id":"1","title":"Aashiqui"},{"id":"2","title":"Kabir Singh"},{"id":"3","title":"Kabir"}]}}`)
			svc := newTestService(t, catalog)

			id, err := svc.AlbumIDFromQuery(ctx, "kabir singh")
			if err != nil || id != "2" {
				t.Errorf("expected 2, got %q (%v)", id, err)
			}
		})

		t.Run("No Match", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("autocomplete.get", `{"albums":{"data":[]}}`)
			svc := newTestService(t, catalog)

			_, err := svc.AlbumIDFromQuery(ctx, "nothing")
			if !IsNotFound(err) {
				t.Errorf("expected not found, got %v", err)
			}
		})

		t.Run("Link", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.pages["/album/kabir-singh/tok"] = `{"album_id":"777"}`
			svc := newTestService(t, catalog)

			id, err := svc.AlbumIDFromQuery(ctx, "https://www.jiosaavn.com/album/kabir-singh/tok")
			if err != nil || id != "777" {
				t.Errorf("expected 777, got %q (%v)", id, err)
			}
		})

		t.Run("Empty Query", func(t *testing.T) {
			svc := newTestService(t, newFakeCatalog())
			if _, err := svc.AlbumIDFromQuery(ctx, "  "); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("PlaylistIDFromQuery", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.pages["/featured/romantic-hits/tok"] = `x "type":"playlist","id":"pl5" y`
		svc := newTestService(t, catalog)

		id, err := svc.PlaylistIDFromQuery(ctx, "https://www.jiosaavn.com/featured/romantic-hits/tok")
		if err != nil || id != "pl5" {
			t.Errorf("expected pl5, got %q (%v)", id, err)
		}
	})

	t.Run("GetAlbum", func(t *testing.T) {
		t.Run("Composite Record", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.methods["content.getAlbumDetails"] = func(r *http.Request) string {
				if r.URL.Query().Get("albumid") != "42" {
					t.Errorf("unexpected albumid %q", r.URL.Query().Get("albumid"))
				}
				return `{"title":"Rock &amp; Roll","image":"a-150x150.jpg","songs":[{"id":"s1","song":"One &quot;1&quot;"},{"id":"s2"}]}`
			}
			svc := newTestService(t, catalog)

			result, err := svc.GetAlbum(ctx, "42", false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Shape != models.ShapeComposite || result.Len() != 2 {
				t.Fatalf("expected composite with 2 songs, got %v/%d", result.Shape, result.Len())
			}
			if result.Record.String("title") != "Rock & Roll" || result.Record.String("image") != "a-500x500.jpg" {
				t.Errorf("unexpected album fields %v", result.Record)
			}
			songs, _ := result.Record.Songs()
			if songs[0].(map[string]any)["song"] != "One '1'" {
				t.Errorf("expected songs formatted, got %v", songs[0])
			}
		})

		t.Run("Upstream Error", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("content.getAlbumDetails", `{"error":{"code":"INPUT_INVALID","msg":"Album not found"}}`)
			svc := newTestService(t, catalog)

			_, err := svc.GetAlbum(ctx, "0", false)
			if !IsNotFound(err) || !strings.Contains(err.Error(), "Album not found") {
				t.Errorf("expected not found with upstream message, got %v", err)
			}
		})
	})

	t.Run("GetPlaylist", func(t *testing.T) {
		t.Run("Composite Record", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("playlist.getDetails", `{"listname":"Hits &amp; More","firstname":"Saavn","songs":[{"id":"s1"}]}`)
			svc := newTestService(t, catalog)

			result, err := svc.GetPlaylist(ctx, "pl1", false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Shape != models.ShapeComposite || result.Record.String("listname") != "Hits & More" {
				t.Errorf("unexpected result %+v", result)
			}
		})

		t.Run("Bare Array", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("playlist.getDetails", `[{"id":"s1"},{"id":"s2"}]`)
			svc := newTestService(t, catalog)

			result, err := svc.GetPlaylist(ctx, "pl1", false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Shape != models.ShapeList || len(result.Items) != 2 {
				t.Errorf("expected list of 2, got %+v", result)
			}
		})

		t.Run("Empty Object", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("playlist.getDetails", `{}`)
			svc := newTestService(t, catalog)

			if _, err := svc.GetPlaylist(ctx, "pl1", false); !IsNotFound(err) {
				t.Errorf("expected not found, got %v", err)
			}
		})
	})

	t.Run("GetLyrics", func(t *testing.T) {
		t.Run("Found", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.methods["lyrics.getLyrics"] = func(r *http.Request) string {
				q := r.URL.Query()
				if q.Get("lyrics_id") != "s1" || q.Get("ctx") != "web6dot0" || q.Get("api_version") != "4" {
					t.Errorf("unexpected lyrics params %v", q)
				}
				return `{"lyrics":"line one<br>line two"}`
			}
			svc := newTestService(t, catalog)

			text, err := svc.GetLyrics(ctx, "s1")
			if err != nil || text != "line one<br>line two" {
				t.Errorf("unexpected lyrics %q (%v)", text, err)
			}
		})

		t.Run("Missing", func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("lyrics.getLyrics", `{"status":"failure","error":{"msg":"Lyrics not found"}}`)
			svc := newTestService(t, catalog)

			_, err := svc.GetLyrics(ctx, "s1")
			if !IsNotFound(err) {
				t.Errorf("expected not found, got %v", err)
			}
		})
	})

	t.Run("Rate Limited Request With Canceled Context", func(t *testing.T) {
		catalog := newFakeCatalog()
		server := httptest.NewServer(catalog)
		defer server.Close()

		svc := NewSaavnService(SaavnOpts{
			BaseURL:           server.URL,
			RequestsPerSecond: 0.001,
			Burst:             1,
			Logger:            shared.NewLogger(io.Discard),
		})
		svc.limiter.Allow()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := svc.GetLyrics(cctx, "s1"); !errors.Is(err, shared.ErrProviderFailure) {
			t.Errorf("expected ErrProviderFailure, got %v", err)
		}
	})
}

func TestCatalogLinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"JioSaavn", "https://www.jiosaavn.com/song/x/y", true},
		{"Saavn", "http://saavn.com/s/album/x", true},
		{"Subdomain", "https://m.jiosaavn.com/featured/x", true},
		{"Foreign Host", "https://notsaavn.com/song/x", false},
		{"Plain Text", "saavn top hits", false},
		{"Host In Path", "https://example.com/jiosaavn.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCatalogLink(tt.in); got != tt.want {
				t.Errorf("isCatalogLink(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
