package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/stagedoor/theater-api/internal/model"
	"github.com/stagedoor/theater-api/internal/repository"
)

// The seed stores are the narrow slices of the repositories the seed
// procedure needs. Keeping them as interfaces lets tests run the seed
// against in-memory fakes.
type roleStore interface {
	Ensure(ctx context.Context, name string) error
	Assign(ctx context.Context, userID uint64, roleName string) error
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, username, password string, cost int) (uint64, error)
}

type theaterStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *model.Theater) error
}

// seedUser is one baseline (username, password, role) triple.
type seedUser struct {
	username string
	password string
	role     string
}

var seedUsers = []seedUser{
	{"galkadi", "Password123!", model.RoleAdmin},
	{"bob", "Password123!", model.RoleUser},
	{"sue", "Password123!", model.RoleUser},
}

// seedTheater is one baseline venue. managed marks venues assigned to
// the baseline manager (bob).
type seedTheater struct {
	name      string
	address   string
	seatCount uint32
	managed   bool
}

var seedTheaters = []seedTheater{
	{"AMC Palace 10", "123 Main St, Springfield", 150, true},
	{"Regal Cinema", "456 Elm St, Shelbyville", 200, true},
	{"Grand Theater", "789 Broadway Ave, Metropolis", 300, false},
	{"Vintage Drive-In", "101 Retro Rd, Smallville", 75, false},
}

// Seed provisions baseline roles, users and sample theaters. It is
// idempotent: running it any number of times against the same store
// produces the same final state as running it once. Existing rows are
// never overwritten, so customized records survive restarts. The server
// must not accept traffic until Seed has returned.
func Seed(ctx context.Context, roles roleStore, users userStore, theaters theaterStore, bcryptCost int) error {
	// Roles first; user seeding assigns them by name.
	for _, name := range model.RoleNames {
		if err := roles.Ensure(ctx, name); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	for _, su := range seedUsers {
		uid, created, err := ensureUser(ctx, users, su, bcryptCost)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.username, err)
		}
		// Assignment is additive and idempotent; an existing user keeps
		// any extra roles granted since the last run.
		if err := roles.Assign(ctx, uid, su.role); err != nil {
			return fmt.Errorf("seed user %s role: %w", su.username, err)
		}
		if created {
			log.Printf("seed: created user %s (%s)", su.username, su.role)
		}
	}

	n, err := theaters.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed theaters count: %w", err)
	}
	if n > 0 {
		// Theaters exist, seeded or operator-created; leave them alone.
		return nil
	}

	manager, err := users.GetByUsername(ctx, "bob")
	if err != nil {
		return fmt.Errorf("seed theaters manager lookup: %w", err)
	}
	for _, st := range seedTheaters {
		t := &model.Theater{
			Name:      st.name,
			Address:   st.address,
			SeatCount: st.seatCount,
		}
		if st.managed {
			id := manager.ID
			t.ManagerID = &id
		}
		if err := theaters.Create(ctx, t); err != nil {
			return fmt.Errorf("seed theater %s: %w", st.name, err)
		}
	}
	log.Printf("seed: inserted %d sample theaters", len(seedTheaters))
	return nil
}

// ensureUser creates the user iff no user with that username exists and
// returns its id. The boolean reports whether a row was created.
func ensureUser(ctx context.Context, users userStore, su seedUser, cost int) (uint64, bool, error) {
	u, err := users.GetByUsername(ctx, su.username)
	if err == nil {
		return u.ID, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return 0, false, err
	}
	uid, err := users.Create(ctx, su.username, su.password, cost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			// Concurrent seed run won the insert; resolve the id.
			u, err := users.GetByUsername(ctx, su.username)
			if err != nil {
				return 0, false, err
			}
			return u.ID, false, nil
		}
		return 0, false, err
	}
	return uid, true, nil
}
