package database

// Transcript is one user's accumulated conversation. Timestamps are Unix
// nanoseconds so idle pruning compares plain integers.
type Transcript struct {
	UserID     string `db:"user_id"`
	Transcript string `db:"transcript"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}
