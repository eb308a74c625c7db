// Command createadmin provisions an administrator account directly in the
// database. The HTTP API never exposes a route that sets the admin flag, so
// this is the only way to mint one.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/repository/sqlite"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password (required when creating)")
	flag.Parse()

	if strings.TrimSpace(*username) == "" {
		log.Fatal("-username is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Init(ctx); err != nil {
		log.Fatalf("init user repository: %v", err)
	}

	existing, err := repo.GetByUsername(ctx, strings.TrimSpace(*username))
	switch {
	case err == nil:
		// promote in place, approved and admin
		res, err := db.ExecContext(ctx, `
UPDATE users
SET approved = 1, is_admin = 1, updated_at = ?
WHERE id = ?`,
			time.Now().UTC(),
			existing.ID,
		)
		if err != nil {
			log.Fatalf("promote user: %v", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			log.Fatalf("promote user: no rows updated")
		}
		log.Printf("promoted %s (id=%d) to admin", existing.Username, existing.ID)

	case errors.Is(err, repository.ErrNotFound):
		if strings.TrimSpace(*password) == "" {
			log.Fatal("-password is required to create a new admin")
		}
		if len(strings.TrimSpace(*password)) < 8 {
			log.Fatal("password must be at least 8 characters")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(*password)), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}

		user := &domain.User{
			Username:     strings.TrimSpace(*username),
			PasswordHash: string(hash),
			Approved:     true,
			IsAdmin:      true,
		}
		id, err := repo.Create(ctx, user)
		if err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("created admin %s (id=%d)", user.Username, id)

	default:
		log.Fatalf("look up user: %v", err)
	}
}
