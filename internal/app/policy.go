package app

import (
	"fmt"
	"strings"

	"github.com/bft-labs/composite/internal/domain"
)

// ErrorPolicy decides what a per-pair failure does to the run.
type ErrorPolicy string

const (
	// PolicyAbort ends the run at the first failure.
	PolicyAbort ErrorPolicy = "abort"
	// PolicyContinue records the failure, skips the pair and carries on.
	// Enumeration failures still end the run.
	PolicyContinue ErrorPolicy = "continue"
)

// ParseErrorPolicy resolves a policy name. The empty name means PolicyAbort.
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return PolicyAbort, nil
	case PolicyAbort, PolicyContinue:
		return p, nil
	default:
		return "", fmt.Errorf("unknown error policy %q (valid: abort, continue)", name)
	}
}

// handle records err and returns it if the run must stop.
func (p ErrorPolicy) handle(report *domain.Report, err *domain.PairError) error {
	report.RecordFailure(err)
	if p == PolicyContinue {
		return nil
	}
	return err
}
