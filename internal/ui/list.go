package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/saavnx/internal/formatter"
	"github.com/desertthunder/saavnx/internal/shared"
)

var _ list.Item = songItem{}

// songItem wraps [formatter.Song] to implement [list.Item].
type songItem struct {
	song formatter.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := i.song.Artist
	if i.song.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	if i.song.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.song.Duration))
	}
	return desc
}

func songItems(songs []formatter.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}
