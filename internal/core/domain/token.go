package domain

import "time"

// AuthToken is the server-side record backing one opaque bearer token.
// SecretHash holds the SHA-256 digest of the random secret; the plaintext
// is disclosed exactly once at issuance and never persisted. A user may
// hold any number of live tokens.
type AuthToken struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	SecretHash string    `bson:"secret_hash"`
	CreatedAt  time.Time `bson:"created_at"`
}
