// Package server implements the rosterd HTTP API: a chi router over a
// Store of user records. The wire contract is deliberately plain JSON CRUD;
// failures carry a {"detail": "..."} body and are otherwise conveyed by
// status code alone.
package server

import (
	"context"
	"errors"

	"github.com/rosterhq/roster/internal/api"
)

// ErrNotFound is returned by a Store when the requested user id does not
// exist.
var ErrNotFound = errors.New("user not found")

// Store defines the data access contract for user records. Methods accept
// context.Context for cancellation; ErrNotFound is the only expected error
// condition, everything else indicates an infrastructure failure.
type Store interface {
	ListUsers(ctx context.Context) ([]api.User, error)
	GetUser(ctx context.Context, id int64) (api.User, error)
	CreateUser(ctx context.Context, draft api.Draft) (api.User, error)
	UpdateUser(ctx context.Context, id int64, draft api.Draft) (api.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
