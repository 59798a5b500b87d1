package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/splashgate/internal/database/repository"
)

// WelcomeName is the name on the greeting seeded into a new database.
const WelcomeName = "splashgate"

// SeedDefaults records a first greeting in an empty database.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewGreetingRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	g := repository.Greeting{
		ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte("greeting:welcome")).String(),
		Name:      WelcomeName,
		Message:   "Welcome! Startup is gated on the frontend and the backend.",
		CreatedAt: Now(),
	}
	return repo.Insert(ctx, g)
}
