// Package ui implements an interactive terminal catalog browser using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow:
//  1. [SearchView] : Type a search term or paste a song, album or playlist link
//  2. [ResultsView] : Browse the songs the query resolved to
//  3. [DetailView] : Inspect a single song with its lyrics in a scrollable viewport
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving fetch results via the Msg union type.
// Queries go through the same dispatcher the HTTP server uses, so a query behaves identically in both places.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, s, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
