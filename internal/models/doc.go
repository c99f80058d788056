// Package models defines the request-scoped value types that flow through the saavnx resolution pipeline.
//
// Inputs:
//   - [RawQuery] : loosely typed request parameters as received from HTTP or the CLI
//   - [Flag] : tri-state (unset/true/false) option parsed from a raw string
//   - [ResolvedFlags] : strict booleans and the optional result limit
//
// Resolution:
//   - [ResourceReference] : what the caller asked for (song, album, playlist, free-text search)
//
// Outputs:
//   - [Record] : opaque catalog data as returned by the provider
//   - [Result] : tagged variant over single records, lists and records carrying a songs list
//   - [Envelope] : the uniform {status, error?, ...} response wrapper
//
// Nothing here is persisted or shared between requests.
package models
