package models

import (
	"encoding/json"
	"strings"
)

// RawQuery holds request parameters before normalization.
//
// Nil pointers mean the parameter was absent.
type RawQuery struct {
	Text     string
	Lyrics   *string
	SongData *string
	Limit    *int
}

// Flag is an explicitly tri-state boolean parameter.
type Flag int

const (
	FlagUnset Flag = iota
	FlagTrue
	FlagFalse
)

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return "unset"
	}
}

// Resolve maps the flag to a bool, using def when the flag is unset.
func (f Flag) Resolve(def bool) bool {
	switch f {
	case FlagTrue:
		return true
	case FlagFalse:
		return false
	default:
		return def
	}
}

// ParseOptOut parses a flag that is enabled by any value except the literal "false".
func ParseOptOut(raw *string) Flag {
	if raw == nil {
		return FlagUnset
	}
	if strings.EqualFold(*raw, "false") {
		return FlagFalse
	}
	return FlagTrue
}

// ParseOptIn parses a flag that is enabled only by the literal "true".
func ParseOptIn(raw *string) Flag {
	if raw == nil {
		return FlagUnset
	}
	if strings.EqualFold(*raw, "true") {
		return FlagTrue
	}
	return FlagFalse
}

// ResolvedFlags are the typed post-processing options of a request.
type ResolvedFlags struct {
	IncludeLyrics   bool
	IncludeSongData bool
	Limit           int  // Number of entries kept when Limited is set
	Limited         bool // Whether a limit was requested
}

// ResourceKind tags a [ResourceReference].
type ResourceKind int

const (
	KindSearch ResourceKind = iota
	KindSong
	KindAlbum
	KindPlaylist
	KindUnknown // catalog link without a recognised path
)

func (k ResourceKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindSong:
		return "song"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// ResourceReference points at the catalog resource a query asks for.
//
// Query is the input text (a link, an id or free text); ID is set once resolved.
type ResourceReference struct {
	Kind  ResourceKind
	Query string
	ID    string
}

// WithID returns a copy of the reference carrying the resolved id.
func (r ResourceReference) WithID(id string) ResourceReference {
	r.ID = id
	return r
}

// Resolved reports whether the reference carries an id.
func (r ResourceReference) Resolved() bool {
	return r.ID != ""
}

// Record is an opaque catalog record (song, album or playlist metadata).
type Record map[string]any

// String returns the string value stored under key, or "" when absent or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Songs returns the record's songs sequence.
func (r Record) Songs() ([]any, bool) {
	songs, ok := r["songs"].([]any)
	return songs, ok
}

// Shape tags the variant held by a [Result].
type Shape int

const (
	ShapeNone Shape = iota
	ShapeSingle
	ShapeList
	ShapeComposite
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeList:
		return "list"
	case ShapeComposite:
		return "composite"
	default:
		return "none"
	}
}

// Result is the provider output of a fetch.
//
// Single records are never truncated; lists and composite records (a record carrying a songs
// sequence) are.
type Result struct {
	Shape  Shape
	Record Record
	Items  []any
}

// Single wraps a record that carries no truncatable sequence.
func Single(r Record) Result {
	if r == nil {
		return Result{}
	}
	return Result{Shape: ShapeSingle, Record: r}
}

// List wraps a plain sequence.
func List(items []any) Result {
	if items == nil {
		items = []any{}
	}
	return Result{Shape: ShapeList, Items: items}
}

// Composite wraps a record; it is tagged composite only when it carries a songs sequence.
func Composite(r Record) Result {
	if r == nil {
		return Result{}
	}
	if _, ok := r.Songs(); ok {
		return Result{Shape: ShapeComposite, Record: r}
	}
	return Single(r)
}

// Empty reports whether the result holds nothing.
func (r Result) Empty() bool {
	switch r.Shape {
	case ShapeList:
		return false
	case ShapeSingle, ShapeComposite:
		return len(r.Record) == 0
	default:
		return true
	}
}

// Len returns the number of entries a limit applies to.
func (r Result) Len() int {
	switch r.Shape {
	case ShapeList:
		return len(r.Items)
	case ShapeComposite:
		songs, _ := r.Record.Songs()
		return len(songs)
	default:
		return 0
	}
}

// Truncate keeps the first n entries of a list or of a composite's songs, preserving order.
//
// n <= 0 yields an empty sequence. The record map is mutated in place.
func (r Result) Truncate(n int) Result {
	if n < 0 {
		n = 0
	}

	switch r.Shape {
	case ShapeList:
		if n < len(r.Items) {
			r.Items = r.Items[:n]
		}
	case ShapeComposite:
		if songs, ok := r.Record.Songs(); ok && n < len(songs) {
			r.Record["songs"] = songs[:n]
		}
	}

	return r
}

// Apply truncates the result when flags carry a limit.
func (r Result) Apply(flags ResolvedFlags) Result {
	if !flags.Limited {
		return r
	}
	return r.Truncate(flags.Limit)
}

// Envelope is the uniform response of every dispatcher operation.
type Envelope struct {
	Status bool
	Error  string
	Result Result
}

// Fail builds a failure envelope.
func Fail(msg string) Envelope {
	return Envelope{Status: false, Error: msg}
}

// OK builds a success envelope around a result.
func OK(result Result) Envelope {
	return Envelope{Status: true, Result: result}
}

// NoResult builds the envelope for a query that matched nothing without failing.
func NoResult() Envelope {
	return Envelope{}
}

// Failed reports whether the envelope describes an error.
func (e Envelope) Failed() bool {
	return !e.Status && e.Error != ""
}

// Body returns the JSON-ready value of the envelope.
//
// Lists pass through as bare arrays; records get the status field merged in unless they set
// one themselves.
func (e Envelope) Body() any {
	if !e.Status {
		body := map[string]any{"status": false}
		if e.Error != "" {
			body["error"] = e.Error
		}
		return body
	}

	switch e.Result.Shape {
	case ShapeList:
		return e.Result.Items
	case ShapeSingle, ShapeComposite:
		body := make(map[string]any, len(e.Result.Record)+1)
		for k, v := range e.Result.Record {
			body[k] = v
		}
		if _, ok := body["status"]; !ok {
			body["status"] = true
		}
		return body
	default:
		return map[string]any{"status": true}
	}
}

// MarshalJSON implements [json.Marshaler].
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Body())
}
