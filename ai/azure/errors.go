package azure

import (
	"fmt"
	"strings"

	"github.com/poiesic/qagen/core"
)

// classifyProviderError maps raw client errors onto the domain taxonomy.
// Rate limiting is the only transient condition: it is wrapped so
// errors.Is(err, core.ErrRateLimited) holds for the retry predicate.
// Everything else passes through unchanged.
func classifyProviderError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") {
		return fmt.Errorf("%w: %v", core.ErrRateLimited, err)
	}

	return err
}
