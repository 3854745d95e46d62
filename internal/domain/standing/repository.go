package standing

import "context"

type Repository interface {
	// AddOtherPoints fails with ErrMissingIndividual for unregistered names.
	AddOtherPoints(ctx context.Context, points []OtherPoints) error
	ListOtherPoints(ctx context.Context, year int) ([]OtherPoints, error)
}
