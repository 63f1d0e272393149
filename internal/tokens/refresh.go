package tokens

import "github.com/google/uuid"

// NewRefreshToken returns a fresh opaque refresh token string. The
// value carries no claims; all meaning lives in the refresh table row
// it is stored against. A v4 UUID gives 122 bits of crypto randomness.
func NewRefreshToken() string {
	return uuid.NewString()
}
