package advice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyQuery    = errors.New("query is empty")
	ErrQueryTooLarge = errors.New("query exceeds maximum allowed size")
)

// ValidateQuery is the caller-side check that runs before the gateway is invoked.
// It rejects empty or whitespace-only input. A positive limit additionally caps the
// size in bytes; limit <= 0 means unlimited. The query is never modified.
func ValidateQuery(query string, limit int) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if limit > 0 && len(query) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrQueryTooLarge, len(query), limit)
	}
	return nil
}

// IsInputError reports whether err came from ValidateQuery.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrQueryTooLarge)
}
