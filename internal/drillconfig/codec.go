// Package drillconfig encodes and decodes the drill configuration stored in
// a session's drills_list column. The current format is a JSON array; an
// earlier schema stored a bare comma-joined list of titles, and Decode keeps
// that era readable by falling back to a title split whenever JSON parsing
// fails.
package drillconfig

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Assignment is one selected drill with its load parameters. Sets, reps and
// time are free-form text so mixed units ("10min", "3x8") stay expressible.
type Assignment struct {
	Title string `json:"title"`
	Sets  string `json:"sets"`
	Reps  string `json:"reps"`
	Time  string `json:"time"`
}

// Encode serializes assignments preserving order and all four fields.
func Encode(assignments []Assignment) (string, error) {
	if assignments == nil {
		assignments = []Assignment{}
	}
	data, err := json.Marshal(assignments)
	if err != nil {
		return "", fmt.Errorf("encoding drill configuration: %w", err)
	}
	return string(data), nil
}

// Decode parses an encoded configuration. Empty input yields an empty slice.
// Anything that is not valid JSON is treated as a legacy comma-separated
// title list with blank load fields; Decode never fails.
func Decode(s string) []Assignment {
	if strings.TrimSpace(s) == "" {
		return []Assignment{}
	}

	var assignments []Assignment
	if err := json.Unmarshal([]byte(s), &assignments); err == nil {
		if assignments == nil {
			return []Assignment{}
		}
		return assignments
	}

	out := []Assignment{}
	for _, title := range strings.Split(s, ", ") {
		if title == "" {
			continue
		}
		out = append(out, Assignment{Title: title})
	}
	return out
}

// Summary renders a configuration as a one-line plan overview, e.g.
// "Near-post blocks (3x8), Crossing waves". Drills without a sets value show
// the bare title.
func Summary(assignments []Assignment) string {
	parts := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.Sets != "" {
			parts = append(parts, fmt.Sprintf("%s (%sx%s)", a.Title, a.Sets, a.Reps))
		} else {
			parts = append(parts, a.Title)
		}
	}
	return strings.Join(parts, ", ")
}
