// package formatter renders catalog envelopes as JSON, CSV, Markdown or plain text and writes them to disk
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
)

// Format names accepted by [Render].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// Song is the flattened view of a song record used by the tabular formats.
type Song struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Duration int // seconds
	Year     string
	URL      string
}

// Listing is the flattened view of an envelope: an optional header record, its songs and lyrics.
type Listing struct {
	Title       string
	Description string
	Image       string
	Lyrics      string
	Songs       []Song
}

// FromEnvelope flattens a successful envelope into a [Listing].
func FromEnvelope(env models.Envelope) (*Listing, error) {
	if !env.Status {
		if env.Error == "" {
			return nil, fmt.Errorf("%w: no result", shared.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, env.Error)
	}

	l := &Listing{}
	result := env.Result

	switch result.Shape {
	case models.ShapeList:
		l.Songs = songs(result.Items)
	case models.ShapeComposite:
		rec := result.Record
		l.Title = first(rec, "title", "listname", "name")
		l.Description = first(rec, "primary_artists", "firstname", "subtitle", "header_desc")
		l.Image = rec.String("image")
		items, _ := rec.Songs()
		l.Songs = songs(items)
	case models.ShapeSingle:
		rec := result.Record
		if lyrics := rec.String("lyrics"); lyrics != "" && len(rec) == 1 {
			l.Lyrics = lyrics
			break
		}
		song := toSong(rec)
		l.Title = song.Title
		l.Image = rec.String("image")
		l.Lyrics = rec.String("lyrics")
		l.Songs = []Song{song}
	}

	return l, nil
}

func songs(items []any) []Song {
	out := make([]Song, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, toSong(m))
		}
	}
	return out
}

// toSong reads both full song records and raw search entries.
func toSong(rec models.Record) Song {
	s := Song{
		ID:    rec.String("id"),
		Title: first(rec, "song", "title"),
		Album: rec.String("album"),
		Year:  rec.String("year"),
		URL:   first(rec, "perma_url", "url"),
	}
	s.Artist = first(rec, "primary_artists", "singers")

	if info, ok := rec["more_info"].(map[string]any); ok {
		more := models.Record(info)
		if s.Artist == "" {
			s.Artist = first(more, "primary_artists", "singers")
		}
		if s.Album == "" {
			s.Album = more.String("album")
		}
	}
	if s.Artist == "" {
		s.Artist = rec.String("description")
	}

	switch d := rec["duration"].(type) {
	case string:
		s.Duration, _ = strconv.Atoi(d)
	case float64:
		s.Duration = int(d)
	case fmt.Stringer:
		s.Duration, _ = strconv.Atoi(d.String())
	}
	return s
}

func first(rec models.Record, keys ...string) string {
	for _, k := range keys {
		if v := rec.String(k); v != "" {
			return v
		}
	}
	return ""
}

// Render encodes env in the named format. JSON output keeps the envelope as served over HTTP.
func Render(env models.Envelope, format string, pretty bool) ([]byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == FormatJSON {
		return shared.MarshalJSON(env.Body(), pretty)
	}

	l, err := FromEnvelope(env)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return ExportToCSV(l)
	case FormatMarkdown, "md":
		return ExportToMarkdown(l, "")
	case FormatText, "txt":
		return ExportToText(l)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportToCSV converts a Listing to CSV format with columns: ID, Title, Artist, Album, Duration, Year, URL
func ExportToCSV(l *Listing) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "Year", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range l.Songs {
		record := []string{
			song.ID,
			song.Title,
			song.Artist,
			song.Album,
			strconv.Itoa(song.Duration),
			song.Year,
			song.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Listing to Markdown format with optional cover image
func ExportToMarkdown(l *Listing, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	title := l.Title
	if title == "" {
		title = "Songs"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	if imageFilename != "" {
		fmt.Fprintf(&buf, "![Cover](%s)\n\n", imageFilename)
	}

	if l.Description != "" {
		fmt.Fprintf(&buf, "**Artists**: %s\n\n", l.Description)
	}

	if len(l.Songs) > 0 {
		fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(l.Songs))
		buf.WriteString("## Songs\n\n")
		for i, song := range l.Songs {
			albumPart := ""
			if song.Album != "" {
				albumPart = fmt.Sprintf(" (%s)", song.Album)
			}
			fmt.Fprintf(&buf, "%d. %s - %s%s [%s]\n", i+1, song.Artist, song.Title, albumPart, shared.FormatDuration(song.Duration))
		}
	}

	if l.Lyrics != "" {
		if len(l.Songs) > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("## Lyrics\n\n")
		buf.WriteString(LyricsText(l.Lyrics))
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Listing to plain text format
func ExportToText(l *Listing) ([]byte, error) {
	var buf bytes.Buffer

	if l.Title != "" && len(l.Songs) != 1 {
		fmt.Fprintf(&buf, "%s\n", l.Title)
		if l.Description != "" {
			fmt.Fprintf(&buf, "%s\n", l.Description)
		}
		fmt.Fprintf(&buf, "Songs: %d\n\n", len(l.Songs))
	}

	for i, song := range l.Songs {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, song.Artist, song.Title)
	}

	if l.Lyrics != "" {
		if len(l.Songs) > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(LyricsText(l.Lyrics))
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// LyricsText turns the catalog's <br> line breaks into newlines.
func LyricsText(s string) string {
	return strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n").Replace(s)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteExport renders env in format and writes it to path.
//
// Markdown exports go to a directory (path) holding README.md and, when withCover is set and the
// listing has an image, cover.jpg. Other formats are written to path directly.
func WriteExport(ctx context.Context, env models.Envelope, format, path string, withCover bool) ([]string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatMarkdown && format != "md" {
		data, err := Render(env, format, true)
		if err != nil {
			return nil, err
		}
		if err := writeFile(path, data); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	l, err := FromEnvelope(env)
	if err != nil {
		return nil, err
	}
	image := ""
	if withCover {
		image = l.Image
	}
	result, err := WriteMarkdownExport(ctx, l, path, image)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a Listing to Markdown format in a dedicated directory.
//
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// A failed download is reported on stderr and the export continues without it.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(ctx context.Context, l *Listing, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("%w: output directory", shared.ErrMissingArgument)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(ctx, imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(l, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}
