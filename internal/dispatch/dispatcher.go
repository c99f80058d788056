package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/services"
	"github.com/desertthunder/saavnx/internal/shared"
)

// Failure messages returned in envelopes.
const (
	MsgSearchQueryRequired   = "Query is required to search songs!"
	MsgSongIDRequired        = "Song ID is required to get a song!"
	MsgInvalidSongID         = "Invalid Song ID received!"
	MsgPlaylistQueryRequired = "Query is required to search playlists!"
	MsgAlbumQueryRequired    = "Query is required to search albums!"
	MsgLyricsQueryRequired   = "Query containing song link or id is required to fetch lyrics!"
	MsgResultQueryRequired   = "Query is required to get a result!"
	MsgSongsNotFound         = "No songs found for the given query!"
	MsgAlbumNotFound         = "No album found for the given query!"
	MsgPlaylistNotFound      = "No playlist found for the given query!"
	MsgLyricsNotFound        = "No lyrics found for the given query!"
	MsgInternalError         = "Something went wrong while handling the request!"
)

// Dispatcher runs catalog queries against a [services.Provider] and shapes the responses.
type Dispatcher struct {
	provider services.Provider
	resolver *Resolver
	logger   *log.Logger
}

// NewDispatcher creates a dispatcher over provider. A nil logger writes to stderr.
func NewDispatcher(provider services.Provider, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dispatcher{
		provider: provider,
		resolver: NewResolver(provider),
		logger:   shared.WithLogger(logger, "component", "dispatch"),
	}
}

// Resolver returns the resolver used by the dispatcher.
func (d *Dispatcher) Resolver() *Resolver {
	return d.resolver
}

// SearchSongs searches songs by free text.
func (d *Dispatcher) SearchSongs(ctx context.Context, q models.RawQuery) (env models.Envelope) {
	defer d.guard("search", &env)

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return models.Fail(MsgSearchQueryRequired)
	}

	flags := NormalizeQuery(q)
	return d.search(ctx, text, flags)
}

// GetSong fetches a single song by id (or song link).
func (d *Dispatcher) GetSong(ctx context.Context, q models.RawQuery) (env models.Envelope) {
	defer d.guard("song", &env)

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return models.Fail(MsgSongIDRequired)
	}

	id, err := d.resolver.ResolveSongID(ctx, text)
	if err != nil {
		return d.failure("song", err, MsgInvalidSongID)
	}
	return d.song(ctx, id, NormalizeQuery(q))
}

// GetAlbum resolves an album link, id or name and fetches the album.
func (d *Dispatcher) GetAlbum(ctx context.Context, q models.RawQuery) (env models.Envelope) {
	defer d.guard("album", &env)

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return models.Fail(MsgAlbumQueryRequired)
	}

	id, err := d.resolver.ResolveAlbumID(ctx, text)
	if err != nil {
		return d.failure("album", err, MsgAlbumNotFound)
	}
	return d.album(ctx, id, NormalizeQuery(q))
}

// GetPlaylist resolves a playlist link, id or name and fetches the playlist.
func (d *Dispatcher) GetPlaylist(ctx context.Context, q models.RawQuery) (env models.Envelope) {
	defer d.guard("playlist", &env)

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return models.Fail(MsgPlaylistQueryRequired)
	}

	id, err := d.resolver.ResolvePlaylistID(ctx, text)
	if err != nil {
		return d.failure("playlist", err, MsgPlaylistNotFound)
	}
	return d.playlist(ctx, id, NormalizeQuery(q))
}

// GetLyrics fetches the lyrics of a song link or id as {status: true, lyrics: <text>}.
func (d *Dispatcher) GetLyrics(ctx context.Context, q models.RawQuery) (env models.Envelope) {
	defer d.guard("lyrics", &env)

	id := strings.TrimSpace(q.Text)
	if id == "" {
		return models.Fail(MsgLyricsQueryRequired)
	}

	if isSongLink(id) {
		var err error
		if id, err = d.resolver.ResolveSongID(ctx, id); err != nil {
			return d.failure("lyrics", err, MsgInvalidSongID)
		}
	}

	text, err := d.provider.GetLyrics(ctx, id)
	if err != nil {
		return d.failure("lyrics", err, MsgLyricsNotFound)
	}
	return models.OK(models.Single(models.Record{"lyrics": text}))
}

// Result answers a query without knowing the resource type up front.
//
// Free text is searched; catalog links are fetched as the song, album or playlist they point at.
// A catalog link with no known path yields an empty envelope.
func (d *Dispatcher) Result(ctx context.Context, q models.RawQuery) (env models.Envelope) {
	defer d.guard("result", &env)

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return models.Fail(MsgResultQueryRequired)
	}

	flags := NormalizeQuery(q)
	ref := Classify(text)
	d.logger.Debug("classified query", "kind", ref.Kind, "query", text)

	if ref.Kind == models.KindSearch {
		// Free text on this path always expands hits into full song records.
		flags.IncludeSongData = true
		return d.search(ctx, text, flags)
	}
	if ref.Kind == models.KindUnknown {
		return models.NoResult()
	}

	ref, err := d.resolver.Resolve(ctx, ref)
	if err != nil {
		return d.failure("result", err, notFoundMessage(ref.Kind))
	}

	switch ref.Kind {
	case models.KindSong:
		return d.song(ctx, ref.ID, flags)
	case models.KindAlbum:
		return d.album(ctx, ref.ID, flags)
	default:
		return d.playlist(ctx, ref.ID, flags)
	}
}

func (d *Dispatcher) search(ctx context.Context, text string, flags models.ResolvedFlags) models.Envelope {
	result, err := d.provider.SearchSongs(ctx, text, flags.IncludeLyrics, flags.IncludeSongData)
	if err != nil {
		notFound := MsgSongsNotFound
		if IsCatalogURL(text) {
			notFound = MsgInvalidSongID
		}
		return d.failure("search", err, notFound)
	}
	return models.OK(result.Apply(flags))
}

func (d *Dispatcher) song(ctx context.Context, id string, flags models.ResolvedFlags) models.Envelope {
	song, err := d.provider.GetSong(ctx, id, flags.IncludeLyrics)
	if err != nil {
		return d.failure("song", err, MsgInvalidSongID)
	}
	if len(song) == 0 {
		return models.Fail(MsgInvalidSongID)
	}
	return models.OK(models.Single(song))
}

func (d *Dispatcher) album(ctx context.Context, id string, flags models.ResolvedFlags) models.Envelope {
	result, err := d.provider.GetAlbum(ctx, id, flags.IncludeLyrics)
	if err != nil {
		return d.failure("album", err, MsgAlbumNotFound)
	}
	if result.Empty() {
		return models.Fail(MsgAlbumNotFound)
	}
	return models.OK(result.Apply(flags))
}

func (d *Dispatcher) playlist(ctx context.Context, id string, flags models.ResolvedFlags) models.Envelope {
	result, err := d.provider.GetPlaylist(ctx, id, flags.IncludeLyrics)
	if err != nil {
		return d.failure("playlist", err, MsgPlaylistNotFound)
	}
	if result.Empty() {
		return models.Fail(MsgPlaylistNotFound)
	}
	return models.OK(result.Apply(flags))
}

// failure converts err into a failure envelope; not-found errors get the fixed notFound message.
func (d *Dispatcher) failure(op string, err error, notFound string) models.Envelope {
	if errors.Is(err, shared.ErrNotFound) {
		d.logger.Debug("no match", "op", op, "error", err)
		return models.Fail(notFound)
	}
	d.logger.Warn("provider request failed", "op", op, "provider", d.provider.Name(), "error", err)
	return models.Fail(err.Error())
}

// guard turns a panic inside op into a failure envelope.
func (d *Dispatcher) guard(op string, env *models.Envelope) {
	if r := recover(); r != nil {
		d.logger.Error("recovered from panic", "op", op, "panic", fmt.Sprint(r))
		*env = models.Fail(MsgInternalError)
	}
}

func notFoundMessage(kind models.ResourceKind) string {
	switch kind {
	case models.KindAlbum:
		return MsgAlbumNotFound
	case models.KindPlaylist:
		return MsgPlaylistNotFound
	default:
		return MsgInvalidSongID
	}
}
