package users

import "context"

// Repository is the row store behind the credential flows. The service layer
// does not care how rows are stored; it only needs these four operations.
//
// Error contract:
//   - Create returns common.ErrDuplicateUsername when the username is taken.
//   - GetByUsername and FetchSecurityAnswers return common.ErrNotFound when
//     no row exists for the username.
//   - UpdatePasswordHash returns common.ErrNotFound when no row was updated.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePasswordHash(ctx context.Context, username, newHash string) error
	FetchSecurityAnswers(ctx context.Context, username string) ([3]SecurityAnswer, error)
}
