package database

// Identity is a stored user account. Secret is the bcrypt digest of
// the account password; it never leaves the service layer.
type Identity struct {
	ID       int64
	Username string
	Email    string
	Secret   []byte
	Role     string
}

// RefreshToken is a stored refresh token row. Expiration is a Unix
// timestamp in seconds.
type RefreshToken struct {
	ID         int64
	OwnerID    int64
	Token      string
	Expiration int64
}

// Note is an owned resource row. Ownership checks compare OwnerID
// against the requesting principal's identity id.
type Note struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"ownerId"`
	Content string `json:"content"`
}
