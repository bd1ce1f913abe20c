package beamdata

import (
	"fmt"
	"strings"
)

// InputError reports missing or non-positive structural input for a
// section. It is recorded on the affected section's design record;
// sibling sections and beams continue processing.
type InputError struct {
	Section string
	Field   string
	Reason  string
}

func (e *InputError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input at %s: %s: %s", e.Section, e.Field, e.Reason)
}

// InfeasibleError reports that a bar arrangement could not be resolved
// within the practical layer ceiling. It carries remediation hints and
// never aborts the batch.
type InfeasibleError struct {
	Detail string
	Hints  []string
}

func (e *InfeasibleError) Error() string {
	if len(e.Hints) == 0 {
		return e.Detail
	}
	return fmt.Sprintf("%s (consider: %s)", e.Detail, strings.Join(e.Hints, ", "))
}
