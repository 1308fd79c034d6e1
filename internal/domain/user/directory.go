package user

import "context"

// Directory resolves user ids to display data. The users table is owned by the
// surrounding console; this engine only reads it.
type Directory interface {
	EmailsByIDs(ctx context.Context, ids []uint) (map[uint]string, error)
	// IDsByEmailQuery returns ids of users whose email contains query.
	IDsByEmailQuery(ctx context.Context, query string, limit int) ([]uint, error)
}
