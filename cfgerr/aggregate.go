package cfgerr

import (
	"fmt"
	"strings"

	"github.com/leynos/ortho-config-sub000/internal/l10n"
)

// AggregateError combines the failures collected while scanning discovery
// candidates.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	b.WriteString(l10n.TN("%d configuration error", "%d configuration errors", uint32(len(e.Errors)), len(e.Errors)))
	b.WriteString(":")
	for i, err := range e.Errors {
		b.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
	}
	return b.String()
}

// Unwrap exposes the combined errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Is matches ErrDiscoveryFailed.
func (e *AggregateError) Is(target error) bool {
	return target == ErrDiscoveryFailed
}

// Aggregate combines errs. It returns nil when errs holds no non-nil error and
// the error itself when there is exactly one, mirroring errors.Join.
func Aggregate(errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return &AggregateError{Errors: kept}
	}
}
