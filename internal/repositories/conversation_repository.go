package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// ConversationRepository covers conversations and their messages.
type ConversationRepository interface {
	ListConversationIDsForParticipant(ctx context.Context, uid string) ([]string, error)
	DeleteConversationWithMessages(ctx context.Context, conversationID string) error
	CountConversations(ctx context.Context) (int, error)
}

// ConversationRepo is a sqlx implementation of ConversationRepository.
type ConversationRepo struct {
	db *sqlx.DB
}

// NewConversationRepo constructs a ConversationRepo.
func NewConversationRepo(db *sqlx.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// ListConversationIDsForParticipant returns ids of every conversation
// whose participant set contains the user.
func (r *ConversationRepo) ListConversationIDsForParticipant(ctx context.Context, uid string) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `SELECT conversation_id FROM conversation_participants WHERE user_id=$1`, uid)
	return ids, err
}

// DeleteConversationWithMessages removes a conversation, its messages
// and its participant rows in one transaction.
func (r *ConversationRepo) DeleteConversationWithMessages(ctx context.Context, conversationID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conversation_messages WHERE conversation_id=$1`, conversationID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM conversation_participants WHERE conversation_id=$1`, conversationID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE id=$1`, conversationID); err != nil {
		return err
	}
	return tx.Commit()
}

// CountConversations returns the total number of conversations.
func (r *ConversationRepo) CountConversations(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM conversations`)
	return count, err
}

var _ ConversationRepository = (*ConversationRepo)(nil)
