package postgresql

import (
	"context"
	"fmt"

	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, entreprise_id, email, nom_complet, password_hash, role, actif, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.EntrepriseID, &u.Email, &u.NomComplet, &u.PasswordHash, &u.Role, &u.Actif, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.EntrepriseID, &u.Email, &u.NomComplet, &u.PasswordHash, &u.Role, &u.Actif, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (entreprise_id, email, nom_complet, password_hash, role, actif)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	var out user.User
	err := q.QueryRow(ctx, query,
		u.EntrepriseID, u.Email, u.NomComplet, u.PasswordHash, u.Role, u.Actif,
	).Scan(
		&out.ID, &out.EntrepriseID, &out.Email, &out.NomComplet, &out.PasswordHash, &out.Role, &out.Actif, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return out, nil
}
