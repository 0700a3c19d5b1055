package idgen

import (
	"context"

	"github.com/pastevault/backend/pkg/crypto"
	"github.com/pastevault/backend/pkg/errorx"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// Length of every generated id. With 36^8 possible values the collision
	// probability stays negligible for the expected record counts.
	Length = 8

	maxAttempts = 10
)

// ExistsFunc reports whether an id is already taken in the target store.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// Generate draws random ids until exists reports a free one. The store's
// unique constraint remains the authoritative guard: a conflicting insert
// after a successful existence check must be retried by the caller, not
// treated as fatal.
func Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := random()

		taken, err := exists(ctx, id)
		if err != nil {
			return "", err
		}

		if !taken {
			return id, nil
		}
	}

	return "", errorx.New(errorx.IDExhausted,
		"Cannot generate an unused id after %d attempts", maxAttempts)
}

// GenerateState returns an unguessable value for oauth anti-replay states.
func GenerateState() (string, error) {
	return crypto.GenerateRandomString()
}

func random() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[crypto.RandIntn(len(alphabet))]
	}
	return string(b)
}
