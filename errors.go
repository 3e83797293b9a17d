package fundwatch

import "errors"

// Resolution failures. Their messages are the details shown to the user next to
// a failed record.
var (
	// ErrNoMatch is returned when no fund code could be established for a record.
	ErrNoMatch = errors.New("no matching fund found")
	// ErrPriceUnavailable is returned when the reference unit price of a
	// resolved fund could not be obtained or parsed.
	ErrPriceUnavailable = errors.New("unable to fetch reference price to estimate units")
	// ErrLookupFailure is returned when the fund search itself failed.
	ErrLookupFailure = errors.New("search failed")
)

// ResolveError is attached to a failed [Candidate]. It matches its Kind and its
// Cause with errors.Is.
type ResolveError struct {
	Kind  error // one of ErrNoMatch, ErrPriceUnavailable, ErrLookupFailure
	Cause error // may be nil
}

func (e *ResolveError) Error() string { return e.Kind.Error() }

func (e *ResolveError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
