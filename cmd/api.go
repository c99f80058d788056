package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/saavnx/internal/services"
	"github.com/desertthunder/saavnx/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to a running saavnx server and prints the body.
//
// Repeated --param key=value flags become the query string.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	params := url.Values{}
	for _, p := range cmd.StringSlice("param") {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return fmt.Errorf("%w: expected key=value, got %q", shared.ErrInvalidFlag, p)
		}
		params.Add(key, value)
	}

	api := r.api
	if server := cmd.String("server"); server != "" {
		api = services.NewAPIService(server, r.httpClient)
	}

	r.logger.Info("GET request", "path", path, "params", params.Encode())

	resp, err := api.Query(ctx, path, params)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		if err := r.writeJSON(resp.JSONData, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		r.output.Write(resp.Body)
		r.output.Write([]byte("\n"))
	}

	if msg, failed := resp.Failed(); failed {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}
	return nil
}
