// Package history keeps the append-only log of completed calculations.
package history

import "fmt"

// Recorder is an append-only, in-memory list of history entries.
// The zero value is ready to use.
type Recorder struct {
	entries []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends an entry. Existing entries are never removed or reordered.
func (r *Recorder) Record(entry string) {
	r.entries = append(r.entries, entry)
}

// Entries returns a copy of the log in insertion order
func (r *Recorder) Entries() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded entries
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Entry formats a completed calculation as "<expression> = <result>"
func Entry(expression, result string) string {
	return fmt.Sprintf("%s = %s", expression, result)
}
