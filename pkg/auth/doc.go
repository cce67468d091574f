// Package auth provides the user store and password authenticator for the
// account lifecycle.
//
// The package is built around three pieces:
//
//   - User, the persisted identity record. It implements token.Target so
//     activation and reset tokens can be bound to its mutable state.
//   - Storage, the persistence contract, with MemoryStorage for tests and
//     development and PgStorage for PostgreSQL via pgx.
//   - Service, which hashes passwords with bcrypt and exposes the user
//     management operations used by the account flows.
//
// # Usage
//
//	users := auth.NewService(auth.NewPgStorage(pool),
//		auth.WithLogger(log),
//		auth.WithBcryptCost(12),
//	)
//
//	u, err := users.CreateUser(ctx, "ada@example.com", "s3cret-pass",
//		auth.WithName("Ada", "Lovelace"),
//	)
//	if errors.Is(err, auth.ErrEmailAlreadyExists) {
//		// render field error
//	}
//
//	u, err = users.Authenticate(ctx, "ada@example.com", "s3cret-pass")
//	if errors.Is(err, auth.ErrInvalidCredentials) {
//		// unknown email or wrong password, indistinguishable on purpose
//	}
//
// Authenticate does not check User.IsActive; the caller decides what an
// inactive account may do.
//
// # Context
//
// SetUserToContext and GetUserFromContext carry the authenticated user through
// a middleware chain.
package auth
