// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/desertthunder/saavnx/internal/models"
)

// Call records a single invocation on [MockProvider].
type Call struct {
	Method string
	Args   []any
}

// MockProvider is a test double for [services.Provider].
//
// Each capability is backed by an optional func field; unset fields return zero values.
// Calls are recorded in order.
type MockProvider struct {
	SearchSongsFn         func(ctx context.Context, query string, lyrics, songData bool) (models.Result, error)
	GetSongFn             func(ctx context.Context, id string, lyrics bool) (models.Record, error)
	SongIDFromURLFn       func(ctx context.Context, link string) (string, error)
	AlbumIDFromQueryFn    func(ctx context.Context, query string) (string, error)
	GetAlbumFn            func(ctx context.Context, id string, lyrics bool) (models.Result, error)
	PlaylistIDFromQueryFn func(ctx context.Context, query string) (string, error)
	GetPlaylistFn         func(ctx context.Context, id string, lyrics bool) (models.Result, error)
	GetLyricsFn           func(ctx context.Context, id string) (string, error)

	mu    sync.Mutex
	calls []Call
}

func (m *MockProvider) record(method string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: method, Args: args})
}

// Calls returns a copy of the recorded calls.
func (m *MockProvider) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Called reports whether method was invoked at least once.
func (m *MockProvider) Called(method string) bool {
	for _, c := range m.Calls() {
		if c.Method == method {
			return true
		}
	}
	return false
}

func (m *MockProvider) SearchSongs(ctx context.Context, query string, lyrics, songData bool) (models.Result, error) {
	m.record("SearchSongs", query, lyrics, songData)
	if m.SearchSongsFn == nil {
		return models.List(nil), nil
	}
	return m.SearchSongsFn(ctx, query, lyrics, songData)
}

func (m *MockProvider) GetSong(ctx context.Context, id string, lyrics bool) (models.Record, error) {
	m.record("GetSong", id, lyrics)
	if m.GetSongFn == nil {
		return nil, nil
	}
	return m.GetSongFn(ctx, id, lyrics)
}

func (m *MockProvider) SongIDFromURL(ctx context.Context, link string) (string, error) {
	m.record("SongIDFromURL", link)
	if m.SongIDFromURLFn == nil {
		return "", nil
	}
	return m.SongIDFromURLFn(ctx, link)
}

func (m *MockProvider) AlbumIDFromQuery(ctx context.Context, query string) (string, error) {
	m.record("AlbumIDFromQuery", query)
	if m.AlbumIDFromQueryFn == nil {
		return "", nil
	}
	return m.AlbumIDFromQueryFn(ctx, query)
}

func (m *MockProvider) GetAlbum(ctx context.Context, id string, lyrics bool) (models.Result, error) {
	m.record("GetAlbum", id, lyrics)
	if m.GetAlbumFn == nil {
		return models.Result{}, nil
	}
	return m.GetAlbumFn(ctx, id, lyrics)
}

func (m *MockProvider) PlaylistIDFromQuery(ctx context.Context, query string) (string, error) {
	m.record("PlaylistIDFromQuery", query)
	if m.PlaylistIDFromQueryFn == nil {
		return "", nil
	}
	return m.PlaylistIDFromQueryFn(ctx, query)
}

func (m *MockProvider) GetPlaylist(ctx context.Context, id string, lyrics bool) (models.Result, error) {
	m.record("GetPlaylist", id, lyrics)
	if m.GetPlaylistFn == nil {
		return models.Result{}, nil
	}
	return m.GetPlaylistFn(ctx, id, lyrics)
}

func (m *MockProvider) GetLyrics(ctx context.Context, id string) (string, error) {
	m.record("GetLyrics", id)
	if m.GetLyricsFn == nil {
		return "", nil
	}
	return m.GetLyricsFn(ctx, id)
}

func (m *MockProvider) Name() string { return "mock" }

// Songs builds n song records with ids "s0".."s(n-1)".
func Songs(n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = map[string]any{"id": "s" + strconv.Itoa(i), "song": "Song " + strconv.Itoa(i)}
	}
	return items
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
