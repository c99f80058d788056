// package services defines interface Provider for catalog backends and the HTTP clients saavnx talks to
//
// JioSaavn (catalog), saavnx itself (remote API client)
package services

import (
	"context"

	"github.com/desertthunder/saavnx/internal/models"
)

// Provider defines the catalog capabilities the resolution layer consumes.
//
// Implementations may fail or return partial data; callers convert failures into envelopes.
type Provider interface {
	// SearchSongs searches the catalog by free text.
	// With songData unset the provider's raw search entries are returned.
	SearchSongs(ctx context.Context, query string, lyrics, songData bool) (models.Result, error)

	// GetSong fetches a single song by id. A nil record with a nil error means the id is unknown.
	GetSong(ctx context.Context, id string, lyrics bool) (models.Record, error)

	// SongIDFromURL resolves a song link to its id.
	SongIDFromURL(ctx context.Context, link string) (string, error)

	// AlbumIDFromQuery resolves an album link, id or name to an album id.
	AlbumIDFromQuery(ctx context.Context, query string) (string, error)

	// GetAlbum fetches an album, including its songs.
	GetAlbum(ctx context.Context, id string, lyrics bool) (models.Result, error)

	// PlaylistIDFromQuery resolves a playlist link, id or name to a playlist id.
	PlaylistIDFromQuery(ctx context.Context, query string) (string, error)

	// GetPlaylist fetches a playlist, including its songs.
	GetPlaylist(ctx context.Context, id string, lyrics bool) (models.Result, error)

	// GetLyrics fetches the lyrics text of a song id.
	GetLyrics(ctx context.Context, id string) (string, error)

	// Name returns the name of the provider (e.g., "JioSaavn")
	Name() string
}
