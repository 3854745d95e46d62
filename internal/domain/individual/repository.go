package individual

import "context"

type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
}
