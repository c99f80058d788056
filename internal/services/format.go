package services

import (
	"context"
	"strings"

	"github.com/desertthunder/saavnx/internal/models"
)

var (
	songTextFields = []string{"song", "music", "singers", "starring", "album", "primary_artists"}

	entityReplacer  = strings.NewReplacer("&quot;", "'", "&amp;", "&", "&#039;", "'")
	previewReplacer = strings.NewReplacer("_320.mp4", "_96_p.mp4", "//aac.", "//preview.")
)

// cleanText replaces the HTML entities the catalog leaves in display strings.
func cleanText(s string) string {
	return entityReplacer.Replace(s)
}

func cleanFields(rec models.Record, fields ...string) {
	for _, field := range fields {
		if v, ok := rec[field].(string); ok {
			rec[field] = cleanText(v)
		}
	}
}

// upscaleImage swaps 150x150 artwork for the 500x500 rendition.
func upscaleImage(rec models.Record) {
	if img := rec.String("image"); img != "" {
		rec["image"] = strings.ReplaceAll(img, "150x150", "500x500")
	}
}

// setMediaURLs fills media_url (and media_preview_url) from the encrypted media URL, falling back
// to rewriting the preview URL.
//
// Songs without the 320kbps flag get the 160kbps stream.
func setMediaURLs(song models.Record) error {
	hq := song.String("320kbps") == "true"

	var decryptErr error
	if enc := song.String("encrypted_media_url"); enc != "" {
		mediaURL, err := decryptMediaURL(enc)
		if err == nil {
			song["media_preview_url"] = previewReplacer.Replace(mediaURL)
			if !hq {
				mediaURL = strings.ReplaceAll(mediaURL, "_320.mp4", "_160.mp4")
			}
			song["media_url"] = mediaURL
			return nil
		}
		decryptErr = err
	}

	if preview := song.String("media_preview_url"); preview != "" {
		mediaURL := strings.ReplaceAll(preview, "preview", "aac")
		if hq {
			mediaURL = strings.ReplaceAll(mediaURL, "_96_p.mp4", "_320.mp4")
		} else {
			mediaURL = strings.ReplaceAll(mediaURL, "_96_p.mp4", "_160.mp4")
		}
		song["media_url"] = mediaURL
		return nil
	}

	return decryptErr
}

// formatSong normalizes a song record in place and returns it.
func (s *SaavnService) formatSong(ctx context.Context, song models.Record, lyrics bool) models.Record {
	if err := setMediaURLs(song); err != nil {
		s.logger.Warn("failed to derive media url", "id", song.String("id"), "error", err)
	}

	cleanFields(song, songTextFields...)
	upscaleImage(song)

	if lyrics {
		song["lyrics"] = nil
		if song.String("has_lyrics") == "true" {
			text, err := s.GetLyrics(ctx, song.String("id"))
			if err != nil {
				s.logger.Warn("failed to fetch lyrics", "id", song.String("id"), "error", err)
			} else {
				song["lyrics"] = text
			}
		}
	}

	if c := song.String("copyright_text"); c != "" {
		song["copyright_text"] = strings.ReplaceAll(c, "&copy;", "©")
	}

	return song
}
