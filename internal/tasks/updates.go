package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Start Phase = iota
	Resolve
	Complete
	Fail
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Resolve:
		return "resolve"
	case Complete:
		return "complete"
	case Fail:
		return "fail"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func startingUpdate(total, workers int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Start,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Resolving %d queries with %d workers...", total, workers),
	}
}

func resolvingUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Resolve,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving: %s...", step, total, query),
	}
}

func resolvedUpdate(step, total int, query string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, query, filesCount),
	}
}

func failedUpdate(step, total int, query string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Fail,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, query, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written to %s", path),
		Data:    path,
	}
}
