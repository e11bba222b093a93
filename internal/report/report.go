// Package report renders search outcomes for the console, as plain text or
// JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Result is one finished search, ready to render.
type Result struct {
	Path        string        `json:"path,omitempty"`
	Pattern     string        `json:"pattern"`
	Found       bool          `json:"found"`
	Offset      int           `json:"offset"`
	Elapsed     time.Duration `json:"elapsedNs"`
	Workers     int           `json:"workers"`
	Fingerprint uint64        `json:"fingerprint,omitempty"`
}

// Reporter receives finished search results.
type Reporter interface {
	Report(r Result) error
}

// Console writes human-readable one-line results.
type Console struct {
	W io.Writer

	// Verbose adds worker count and source fingerprint to each line.
	Verbose bool
}

func (c *Console) Report(r Result) error {
	prefix := ""
	if r.Path != "" {
		prefix = r.Path + ": "
	}

	var err error
	if r.Found {
		_, err = fmt.Fprintf(c.W, "%s%q found at offset %d, elapsed %s\n", prefix, r.Pattern, r.Offset, r.Elapsed)
	} else {
		_, err = fmt.Fprintf(c.W, "%s%q not found, elapsed %s\n", prefix, r.Pattern, r.Elapsed)
	}
	if err != nil {
		return err
	}

	if c.Verbose {
		_, err = fmt.Fprintf(c.W, "  workers=%d fingerprint=%016x\n", r.Workers, r.Fingerprint)
	}
	return err
}

// JSON writes one JSON object per result.
type JSON struct {
	W io.Writer
}

func (j *JSON) Report(r Result) error {
	return json.NewEncoder(j.W).Encode(r)
}
