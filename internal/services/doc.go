// Package services defines the [Provider] interface for music catalogs and implements it for JioSaavn.
//
// # Provider Interface
//
// The resolution layer (internal/dispatch) only consumes the capabilities listed on [Provider]:
// free-text search, lookup by id, link/name to id resolution and lyrics. It never parses
// provider pages itself.
//
// # JioSaavn Implementation
//
// [SaavnService] calls the public api.php endpoints of the JioSaavn web app:
//   - autocomplete.get : free-text search (songs, albums, playlists)
//   - song.getDetails : song metadata, batched by comma separated pids
//   - content.getAlbumDetails : album with its songs
//   - playlist.getDetails : playlist with its songs
//   - lyrics.getLyrics : lyrics text
//
// Song links are resolved by reading the song page (pid) or, failing that, the webapi.get token
// endpoint. Album and playlist names go through autocomplete and the closest title wins
// (Jaro-Winkler similarity).
//
// Links are only followed when their host belongs to saavn.com; the request is always sent to
// the configured base URL so user input can't point the server at arbitrary hosts.
//
// Outbound calls share a [rate.Limiter] and honour the request context.
//
// # Song Formatting
//
// Records are returned as-is apart from a few clean-ups: HTML entities in text fields,
// 500x500 artwork, decrypted media URLs (DES-ECB) with the 320kbps or 160kbps variant, and
// optional lyrics.
//
// # Remote API Client
//
// [APIService] issues raw GET requests against a running saavnx server and is used by the
// CLI's api command.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrProviderFailure] : upstream request or decoding failed
//   - [shared.ErrNotFound] : no record matched an id, link or name
//   - [shared.ErrUnsupportedLink] : link does not belong to the catalog
package services
