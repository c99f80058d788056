package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/services"
	"github.com/desertthunder/saavnx/internal/shared"
)

// Resolver turns links, ids and names into catalog ids using a [services.Provider].
type Resolver struct {
	provider services.Provider
}

// NewResolver creates a resolver backed by provider.
func NewResolver(provider services.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// ResolveSongID resolves a song link to its id. Any other text is taken as the id itself.
func (r *Resolver) ResolveSongID(ctx context.Context, linkOrID string) (string, error) {
	linkOrID = strings.TrimSpace(linkOrID)
	if linkOrID == "" {
		return "", fmt.Errorf("%w: song id", shared.ErrMissingInput)
	}
	if !IsCatalogURL(linkOrID) {
		return linkOrID, nil
	}
	return checkID(r.provider.SongIDFromURL(ctx, linkOrID))
}

// ResolveAlbumID resolves an album link, id or name to an album id.
func (r *Resolver) ResolveAlbumID(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: album query", shared.ErrMissingInput)
	}
	return checkID(r.provider.AlbumIDFromQuery(ctx, query))
}

// ResolvePlaylistID resolves a playlist link, id or name to a playlist id.
func (r *Resolver) ResolvePlaylistID(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: playlist query", shared.ErrMissingInput)
	}
	return checkID(r.provider.PlaylistIDFromQuery(ctx, query))
}

// Resolve returns ref with its id filled in. Search and unknown references are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, ref models.ResourceReference) (models.ResourceReference, error) {
	var (
		id  string
		err error
	)

	switch ref.Kind {
	case models.KindSong:
		id, err = r.ResolveSongID(ctx, ref.Query)
	case models.KindAlbum:
		id, err = r.ResolveAlbumID(ctx, ref.Query)
	case models.KindPlaylist:
		id, err = r.ResolvePlaylistID(ctx, ref.Query)
	default:
		return ref, nil
	}

	if err != nil {
		return ref, err
	}
	return ref.WithID(id), nil
}

func checkID(id string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", shared.ErrNotFound
	}
	return id, nil
}
