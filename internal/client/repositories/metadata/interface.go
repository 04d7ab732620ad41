package metadata

import (
	"context"
)

// Repository is the persisted local key/value state of the client
// (access token, user mirror, locale and theme preferences).
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
