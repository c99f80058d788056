package shared

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommand returns the command that opens target with the platform's default handler.
func browserCommand(ctx context.Context, target string) (*exec.Cmd, error) {
	switch rt := getRuntime(); rt {
	case "darwin":
		return exec.CommandContext(ctx, "open", target), nil
	case "linux":
		return exec.CommandContext(ctx, "xdg-open", target), nil
	case "windows":
		return exec.CommandContext(ctx, "cmd", "/c", "start", target), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenBrowser opens the default system browser at an http(s) URL such as the API docs.
func OpenBrowser(ctx context.Context, target string) error {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: not an http url: %q", ErrInvalidInput, target)
	}

	cmd, err := browserCommand(ctx, u.String())
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
