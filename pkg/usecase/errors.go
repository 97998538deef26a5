package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
)

// Context keys for error values
const (
	UserIDKey    = "userID"
	RecordKeyKey = "recordKey"
	ModuleKey    = "module"
)

func invalidInput(msg string, opts ...goerr.Option) error {
	return goerr.New(msg, append(opts, goerr.T(model.ErrTagInvalidInput))...)
}

// storeCall runs fn under its own timeout. Any failure, a deadline included,
// is tagged as StoreUnavailable.
func storeCall[T any](ctx context.Context, timeout time.Duration, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, goerr.Wrap(err, "store call failed",
			goerr.V("op", op),
			goerr.V("timeout", timeout.String()),
			goerr.T(model.ErrTagStoreUnavailable))
	}
	return v, nil
}
