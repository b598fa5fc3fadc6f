package companysearch

import "github.com/kailas-cloud/companysearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation          = domain.ErrValidation
	ErrNotFound            = domain.ErrNotFound
	ErrConflict            = domain.ErrConflict
	ErrUpstreamUnavailable = domain.ErrUpstreamUnavailable
)

// InvalidField returns the request field a validation error refers to,
// or "" when err is not a validation error.
func InvalidField(err error) string {
	de, ok := domain.AsError(err)
	if !ok || de.Kind != domain.KindValidation {
		return ""
	}
	return de.Field
}
