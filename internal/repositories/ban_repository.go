package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"admin-service/internal/models"
)

var ErrBanNotFound = errors.New("ban record not found")

// BanRepository covers banned-user records.
type BanRepository interface {
	Upsert(ctx context.Context, ban models.BannedUser) error
	Delete(ctx context.Context, uid string) error
	Get(ctx context.Context, uid string) (models.BannedUser, error)
}

// BanRepo is a sqlx implementation of BanRepository.
type BanRepo struct {
	db *sqlx.DB
}

// NewBanRepo constructs a BanRepo.
func NewBanRepo(db *sqlx.DB) *BanRepo {
	return &BanRepo{db: db}
}

// Upsert writes the ban record, replacing any previous one for the uid.
func (r *BanRepo) Upsert(ctx context.Context, ban models.BannedUser) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO banned_users (uid, banned_at, banned_by, reason)
        VALUES (:uid, :banned_at, :banned_by, :reason)
        ON CONFLICT (uid) DO UPDATE SET
            banned_at = EXCLUDED.banned_at,
            banned_by = EXCLUDED.banned_by,
            reason = EXCLUDED.reason`, ban)
	return err
}

// Delete removes the ban record; deleting an absent record is a no-op.
func (r *BanRepo) Delete(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM banned_users WHERE uid=$1`, uid)
	return err
}

// Get fetches the ban record for a uid.
func (r *BanRepo) Get(ctx context.Context, uid string) (models.BannedUser, error) {
	var ban models.BannedUser
	err := r.db.GetContext(ctx, &ban, `SELECT uid, banned_at, banned_by, reason FROM banned_users WHERE uid=$1`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BannedUser{}, ErrBanNotFound
	}
	return ban, err
}

var _ BanRepository = (*BanRepo)(nil)
