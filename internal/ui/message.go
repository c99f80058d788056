package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/saavnx/internal/formatter"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data fetched
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgResultsFetched MsgKind = iota
	MsgSongFetched
)

// fetched carries the flattened envelope of a dispatcher call.
type fetched struct {
	query   string
	listing *formatter.Listing
	err     error
}

// resultsFetchedMsg is the constructor for [MsgResultsFetched]
func resultsFetchedMsg(query string, listing *formatter.Listing, err error) Msg {
	return Msg{kind: MsgResultsFetched, data: fetched{query, listing, err}}
}

// songFetchedMsg is the constructor for [MsgSongFetched]
func songFetchedMsg(id string, listing *formatter.Listing, err error) Msg {
	return Msg{kind: MsgSongFetched, data: fetched{id, listing, err}}
}
