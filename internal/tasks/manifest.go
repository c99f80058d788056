package tasks

import (
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/saavnx/internal/shared"
)

// Manifest is the JSON summary written at the end of a batch run.
type Manifest struct {
	GeneratedAt  time.Time       `json:"generated_at"`
	Format       string          `json:"format"`
	TotalQueries int             `json:"total_queries"`
	Succeeded    int             `json:"succeeded"`
	Failed       int             `json:"failed"`
	Queries      []ManifestEntry `json:"queries"`
}

// ManifestEntry describes one query of the batch.
type ManifestEntry struct {
	Index   int      `json:"index"`
	Query   string   `json:"query"`
	Kind    string   `json:"kind"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Entries int      `json:"entries"`
	Files   []string `json:"files,omitempty"`
}

func newManifest(result *BatchResult, format string) Manifest {
	m := Manifest{
		GeneratedAt:  time.Now().UTC(),
		Format:       format,
		TotalQueries: result.TotalQueries,
		Succeeded:    result.Succeeded,
		Failed:       result.Failed,
		Queries:      make([]ManifestEntry, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		entry := ManifestEntry{
			Index:   res.Index,
			Query:   res.Query,
			Kind:    res.Kind.String(),
			Success: res.Success,
			Entries: res.Entries,
			Files:   res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Queries = append(m.Queries, entry)
	}
	return m
}

func writeManifest(result *BatchResult, format, path string) error {
	data, err := shared.MarshalJSON(newManifest(result, format), true)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
