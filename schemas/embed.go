// Package schemas holds the JSON Schemas for the ranker's file formats.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	CandidatePool    = "candidate_pool.schema.json"
	RankedCandidates = "ranked_candidates.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema file.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	return string(data), nil
}
