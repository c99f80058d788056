package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/saavnx/internal/dispatch"
	"github.com/desertthunder/saavnx/internal/formatter"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
	"github.com/urfave/cli/v3"
)

// catalogOp is a dispatcher method expression such as (*dispatch.Dispatcher).GetAlbum.
type catalogOp func(*dispatch.Dispatcher, context.Context, models.RawQuery) models.Envelope

// SongSearch searches songs by free text.
func (r *Runner) SongSearch(ctx context.Context, cmd *cli.Command) error {
	return r.runQuery(ctx, cmd, (*dispatch.Dispatcher).SearchSongs)
}

// SongGet fetches a single song by id or song link.
func (r *Runner) SongGet(ctx context.Context, cmd *cli.Command) error {
	return r.runQuery(ctx, cmd, (*dispatch.Dispatcher).GetSong)
}

// Album fetches an album by link, id or name.
func (r *Runner) Album(ctx context.Context, cmd *cli.Command) error {
	return r.runQuery(ctx, cmd, (*dispatch.Dispatcher).GetAlbum)
}

// Playlist fetches a playlist by link, id or name.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	return r.runQuery(ctx, cmd, (*dispatch.Dispatcher).GetPlaylist)
}

// Lyrics fetches the lyrics of a song id or song link.
func (r *Runner) Lyrics(ctx context.Context, cmd *cli.Command) error {
	return r.runQuery(ctx, cmd, (*dispatch.Dispatcher).GetLyrics)
}

// Result classifies the query and answers with a search, song, album or playlist.
func (r *Runner) Result(ctx context.Context, cmd *cli.Command) error {
	return r.runQuery(ctx, cmd, (*dispatch.Dispatcher).Result)
}

func (r *Runner) runQuery(ctx context.Context, cmd *cli.Command, op catalogOp) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	q := rawQuery(cmd)
	r.logger.Debug("running query", "command", cmd.Name, "query", q.Text)

	env := op(r.dispatcher, ctx, q)
	if err := r.writeEnvelope(ctx, env, cmd.String("format"), cmd.Bool("pretty"), cmd.String("output")); err != nil {
		return err
	}
	return envelopeError(env)
}

// writeEnvelope renders env to the runner output, or to path when one is given.
//
// JSON output keeps the exact envelope body; the other formats need a successful envelope.
func (r *Runner) writeEnvelope(ctx context.Context, env models.Envelope, format string, pretty bool, path string) error {
	if format == "" {
		format = formatter.FormatJSON
	}

	if path != "" {
		if env.Failed() || !env.Status {
			return envelopeError(env)
		}
		files, err := formatter.WriteExport(ctx, env, format, path, false)
		if err != nil {
			return err
		}
		for _, f := range files {
			r.writePlain("✓ Wrote %s\n", f)
		}
		return nil
	}

	if strings.EqualFold(format, formatter.FormatJSON) {
		return r.writeJSON(env.Body(), pretty)
	}

	data, err := formatter.Render(env, format, pretty)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// rawQuery builds the query from the first argument and the flags the user actually set.
func rawQuery(cmd *cli.Command) models.RawQuery {
	q := models.RawQuery{Text: cmd.StringArg("query")}

	if cmd.IsSet("lyrics") {
		v := strconv.FormatBool(cmd.Bool("lyrics"))
		q.Lyrics = &v
	}
	if cmd.IsSet("songdata") {
		v := strconv.FormatBool(cmd.Bool("songdata"))
		q.SongData = &v
	}
	if cmd.IsSet("limit") {
		n := int(cmd.Int("limit"))
		q.Limit = &n
	}
	return q
}

// envelopeError turns an unsuccessful envelope into a command error so the exit status reflects it.
func envelopeError(env models.Envelope) error {
	switch {
	case env.Failed():
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, env.Error)
	case !env.Status:
		return fmt.Errorf("%w: no result", shared.ErrNotFound)
	default:
		return nil
	}
}

// exportFlags are shared by every catalog command.
func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: json, csv, markdown or text",
			Value:   formatter.FormatJSON,
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write to a file (a directory for markdown) instead of stdout",
		},
	}
}

func lyricsFlag() cli.Flag {
	return &cli.BoolFlag{Name: "lyrics", Aliases: []string{"l"}, Usage: "Include lyrics in song records"}
}

func limitFlag() cli.Flag {
	return &cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Keep only the first N songs"}
}

func queryArgs() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "query", UsageText: "search term, id or jiosaavn.com link"}}
}

func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Song search and lookup",
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search songs by name, or resolve a song link",
				Arguments: queryArgs(),
				Flags: append([]cli.Flag{
					lyricsFlag(),
					&cli.BoolFlag{Name: "songdata", Usage: "Fetch full song records (disable for raw search entries)", Value: true},
					limitFlag(),
				}, exportFlags()...),
				Action: r.SongSearch,
			},
			{
				Name:      "get",
				Usage:     "Fetch a song by id or song link",
				Arguments: queryArgs(),
				Flags:     append([]cli.Flag{lyricsFlag()}, exportFlags()...),
				Action:    r.SongGet,
			},
		},
	}
}

func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "album",
		Usage:     "Fetch an album by link, id or name",
		Arguments: queryArgs(),
		Flags:     append([]cli.Flag{lyricsFlag(), limitFlag()}, exportFlags()...),
		Action:    r.Album,
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "playlist",
		Usage:     "Fetch a playlist by link, id or name",
		Arguments: queryArgs(),
		Flags:     append([]cli.Flag{lyricsFlag(), limitFlag()}, exportFlags()...),
		Action:    r.Playlist,
	}
}

func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "lyrics",
		Usage:     "Fetch lyrics by song id or song link",
		Arguments: queryArgs(),
		Flags:     exportFlags(),
		Action:    r.Lyrics,
	}
}

func resultCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "result",
		Usage:     "Answer any query: search text or a song, album or playlist link",
		Arguments: queryArgs(),
		Flags:     append([]cli.Flag{lyricsFlag(), limitFlag()}, exportFlags()...),
		Action:    r.Result,
	}
}

