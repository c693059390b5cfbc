//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import "fmt"

// CallJournal records calls across several doubles so tests can assert their order.
type CallJournal struct {
	Calls []string
}

// Record appends a formatted entry. A nil journal records nothing.
func (j *CallJournal) Record(format string, args ...any) {
	if j == nil {
		return
	}
	j.Calls = append(j.Calls, fmt.Sprintf(format, args...))
}
