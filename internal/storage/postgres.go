package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"stylora-be/internal/apperr"
	"stylora-be/internal/domain"
	"stylora-be/internal/logger"
)

// PostgresGateway implements the same whole-snapshot contract over
// Postgres. The per-user partitions are stored as JSONB blobs; Save
// rewrites everything inside one transaction so readers never observe a
// partial snapshot.
type PostgresGateway struct {
	db *sql.DB
}

func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

// OpenPostgres connects and pings.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS user_state (
	user_id        INTEGER PRIMARY KEY,
	cart           JSONB NOT NULL DEFAULT '[]',
	orders         JSONB NOT NULL DEFAULT '[]',
	saved_checkout JSONB
);`

// Migrate creates the snapshot tables when missing.
func (g *PostgresGateway) Migrate(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, schema); err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to migrate storage schema", err)
	}
	return nil
}

func (g *PostgresGateway) Load(ctx context.Context) (*domain.Snapshot, error) {
	log := logger.FromCtx(ctx).With(zap.String("storage", "postgres"))
	snap := domain.NewSnapshot()

	rows, err := g.db.QueryContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "failed to load users", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindStorageUnavailable, "failed to scan user", err)
		}
		snap.Users = append(snap.Users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "failed to load users", err)
	}

	stateRows, err := g.db.QueryContext(ctx,
		`SELECT user_id, cart, orders, saved_checkout FROM user_state`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "failed to load user state", err)
	}
	defer stateRows.Close()

	for stateRows.Next() {
		var (
			userID     int
			cartRaw    []byte
			ordersRaw  []byte
			checkedRaw []byte
		)
		if err := stateRows.Scan(&userID, &cartRaw, &ordersRaw, &checkedRaw); err != nil {
			return nil, apperr.Wrap(apperr.KindStorageUnavailable, "failed to scan user state", err)
		}

		// Malformed blobs degrade to empty defaults for that user.
		var cart []domain.CartItem
		if err := json.Unmarshal(cartRaw, &cart); err != nil {
			log.Warn("malformed cart blob, dropping", zap.Int("user_id", userID), zap.Error(err))
			cart = []domain.CartItem{}
		}
		snap.Carts[userID] = cart

		var orders []domain.Order
		if err := json.Unmarshal(ordersRaw, &orders); err != nil {
			log.Warn("malformed orders blob, dropping", zap.Int("user_id", userID), zap.Error(err))
			orders = []domain.Order{}
		}
		snap.Orders[userID] = orders

		if len(checkedRaw) > 0 {
			var saved domain.SavedCheckout
			if err := json.Unmarshal(checkedRaw, &saved); err != nil {
				log.Warn("malformed saved checkout blob, dropping",
					zap.Int("user_id", userID), zap.Error(err))
			} else {
				snap.SavedCheckout[userID] = saved
			}
		}
	}
	if err := stateRows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "failed to load user state", err)
	}

	snap.Normalize()
	return snap, nil
}

func (g *PostgresGateway) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to begin snapshot tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_state`); err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to clear user state", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to clear users", err)
	}

	for _, u := range snap.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, email, password_hash, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt,
		); err != nil {
			return apperr.Wrap(apperr.KindStorageUnavailable, "failed to insert user", err)
		}
	}

	for _, userID := range stateKeys(snap) {
		cartRaw, err := json.Marshal(domain.CloneCart(snap.Carts[userID]))
		if err != nil {
			return fmt.Errorf("encode cart: %w", err)
		}
		ordersRaw, err := json.Marshal(domain.CloneOrders(snap.Orders[userID]))
		if err != nil {
			return fmt.Errorf("encode orders: %w", err)
		}

		var checkedRaw []byte
		if saved, ok := snap.SavedCheckout[userID]; ok {
			checkedRaw, err = json.Marshal(saved)
			if err != nil {
				return fmt.Errorf("encode saved checkout: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_state (user_id, cart, orders, saved_checkout)
			 VALUES ($1, $2, $3, $4)`,
			userID, cartRaw, ordersRaw, checkedRaw,
		); err != nil {
			return apperr.Wrap(apperr.KindStorageUnavailable, "failed to insert user state", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to commit snapshot", err)
	}
	return nil
}

// stateKeys is the sorted union of user ids present in any partition.
func stateKeys(snap *domain.Snapshot) []int {
	set := map[int]struct{}{}
	for id := range snap.Carts {
		set[id] = struct{}{}
	}
	for id := range snap.Orders {
		set[id] = struct{}{}
	}
	for id := range snap.SavedCheckout {
		set[id] = struct{}{}
	}

	keys := make([]int, 0, len(set))
	for id := range set {
		keys = append(keys, id)
	}
	sort.Ints(keys)
	return keys
}
