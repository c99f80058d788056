package dispatch

import "github.com/desertthunder/saavnx/internal/models"

// Normalize interprets the raw lyrics and songdata parameters.
//
// Lyrics are included when the parameter is present and not "false".
// Song data is included unless the parameter is present and not "true".
func Normalize(lyricsRaw, songdataRaw *string) models.ResolvedFlags {
	return models.ResolvedFlags{
		IncludeLyrics:   models.ParseOptOut(lyricsRaw).Resolve(false),
		IncludeSongData: models.ParseOptIn(songdataRaw).Resolve(true),
	}
}

// NormalizeLimit records a requested limit on flags. Negative limits clamp to 0.
func NormalizeLimit(flags models.ResolvedFlags, limit *int) models.ResolvedFlags {
	if limit == nil {
		return flags
	}
	flags.Limited = true
	flags.Limit = max(*limit, 0)
	return flags
}

// NormalizeQuery resolves all flags carried by q.
func NormalizeQuery(q models.RawQuery) models.ResolvedFlags {
	return NormalizeLimit(Normalize(q.Lyrics, q.SongData), q.Limit)
}
