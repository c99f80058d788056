package dispatch

import (
	"strings"

	"github.com/desertthunder/saavnx/internal/models"
)

// HostMarker marks query text as a catalog link.
const HostMarker = "saavn"

var (
	songPaths     = []string{"/song/"}
	albumPaths    = []string{"/album/"}
	playlistPaths = []string{"/playlist/", "/featured/"}
)

// Classify decides which resource text refers to.
//
// Text without the host marker is a free-text search, empty text included. Catalog links are
// matched by path marker in song, album, playlist order; a link with none of them is
// [models.KindUnknown].
func Classify(text string) models.ResourceReference {
	ref := models.ResourceReference{Kind: models.KindSearch, Query: text}
	if !IsCatalogURL(text) {
		return ref
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, songPaths):
		ref.Kind = models.KindSong
	case containsAny(lower, albumPaths):
		ref.Kind = models.KindAlbum
	case containsAny(lower, playlistPaths):
		ref.Kind = models.KindPlaylist
	default:
		ref.Kind = models.KindUnknown
	}
	return ref
}

// IsCatalogURL reports whether text carries the host marker.
func IsCatalogURL(text string) bool {
	return strings.Contains(strings.ToLower(text), HostMarker)
}

// isSongLink reports whether lyrics input should be resolved to a song id first.
// Both the scheme and the host marker match case-insensitively.
func isSongLink(text string) bool {
	return strings.Contains(strings.ToLower(text), "http") && IsCatalogURL(text)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
