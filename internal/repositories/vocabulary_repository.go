package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// VocabularyRepository covers per-user vocabulary entries.
type VocabularyRepository interface {
	DeleteEntriesForUser(ctx context.Context, uid string) (int, error)
}

// VocabularyRepo is a sqlx implementation of VocabularyRepository.
type VocabularyRepo struct {
	db *sqlx.DB
}

// NewVocabularyRepo constructs a VocabularyRepo.
func NewVocabularyRepo(db *sqlx.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// DeleteEntriesForUser removes all vocabulary entries owned by the user
// and reports how many were removed.
func (r *VocabularyRepo) DeleteEntriesForUser(ctx context.Context, uid string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary_entries WHERE user_id=$1`, uid)
	if err != nil {
		return 0, err
	}
	count, err := res.RowsAffected()
	return int(count), err
}

var _ VocabularyRepository = (*VocabularyRepo)(nil)
