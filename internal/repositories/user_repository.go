package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"admin-service/internal/models"
)

var ErrUserNotFound = errors.New("chat user not found")

// UserRepository covers chat user documents and the relation graph
// hanging off them.
type UserRepository interface {
	GetChatUser(ctx context.Context, uid string) (models.ChatUser, error)
	UpsertChatUser(ctx context.Context, user models.ChatUser) error
	RefreshFromDirectory(ctx context.Context, uid, displayName, photoURL, email string, lastSeen time.Time) error
	DeleteChatUser(ctx context.Context, uid string) error

	ListFriendIDs(ctx context.Context, uid string) ([]string, error)
	RemoveFriendEdge(ctx context.Context, userID, friendID string) error
	DeleteFriendRequestsTo(ctx context.Context, uid string) error
	ListSentRequestRecipients(ctx context.Context, uid string) ([]string, error)
	DeletePendingRequest(ctx context.Context, userID, fromUserID string) error
	DeleteSentRequest(ctx context.Context, userID, toUserID string) error
	DeleteShareRequests(ctx context.Context, uid string) error
	DeleteMetadata(ctx context.Context, uid string) error
	DeleteProfile(ctx context.Context, uid string) error

	CountChatUsers(ctx context.Context) (int, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetChatUser fetches a chat user by uid.
func (r *UserRepo) GetChatUser(ctx context.Context, uid string) (models.ChatUser, error) {
	var user models.ChatUser
	err := r.db.GetContext(ctx, &user, `SELECT uid, display_name, photo_url, email, created_at, last_seen, migrated_at FROM chat_users WHERE uid=$1`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatUser{}, ErrUserNotFound
	}
	return user, err
}

// UpsertChatUser creates the chat user or, when the row already exists,
// refreshes its directory-sourced fields. Original creation and
// migration timestamps are kept on conflict.
func (r *UserRepo) UpsertChatUser(ctx context.Context, user models.ChatUser) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO chat_users (uid, display_name, photo_url, email, created_at, last_seen, migrated_at)
        VALUES (:uid, :display_name, :photo_url, :email, :created_at, :last_seen, :migrated_at)
        ON CONFLICT (uid) DO UPDATE SET
            display_name = EXCLUDED.display_name,
            photo_url = EXCLUDED.photo_url,
            email = EXCLUDED.email,
            last_seen = EXCLUDED.last_seen`, user)
	return err
}

// RefreshFromDirectory updates the directory-mirrored fields and bumps
// last_seen.
func (r *UserRepo) RefreshFromDirectory(ctx context.Context, uid, displayName, photoURL, email string, lastSeen time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE chat_users SET display_name=$2, photo_url=$3, email=$4, last_seen=$5 WHERE uid=$1`,
		uid, displayName, photoURL, email, lastSeen)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteChatUser removes the chat user document itself.
func (r *UserRepo) DeleteChatUser(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_users WHERE uid=$1`, uid)
	return err
}

// ListFriendIDs returns the ids on the user's side of the friend graph.
func (r *UserRepo) ListFriendIDs(ctx context.Context, uid string) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `SELECT friend_id FROM friends WHERE user_id=$1`, uid)
	return ids, err
}

// RemoveFriendEdge deletes one direction of a friend relation.
func (r *UserRepo) RemoveFriendEdge(ctx context.Context, userID, friendID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM friends WHERE user_id=$1 AND friend_id=$2`, userID, friendID)
	return err
}

// DeleteFriendRequestsTo removes all pending requests addressed to the user.
func (r *UserRepo) DeleteFriendRequestsTo(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE user_id=$1`, uid)
	return err
}

// ListSentRequestRecipients returns who the user has open requests to.
func (r *UserRepo) ListSentRequestRecipients(ctx context.Context, uid string) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `SELECT to_user_id FROM sent_requests WHERE user_id=$1`, uid)
	return ids, err
}

// DeletePendingRequest removes the request fromUserID left on userID's side.
func (r *UserRepo) DeletePendingRequest(ctx context.Context, userID, fromUserID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE user_id=$1 AND from_user_id=$2`, userID, fromUserID)
	return err
}

// DeleteSentRequest removes the user's own record of a sent request.
func (r *UserRepo) DeleteSentRequest(ctx context.Context, userID, toUserID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sent_requests WHERE user_id=$1 AND to_user_id=$2`, userID, toUserID)
	return err
}

// DeleteShareRequests removes all of the user's share requests.
func (r *UserRepo) DeleteShareRequests(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM share_requests WHERE user_id=$1`, uid)
	return err
}

// DeleteMetadata removes the user's metadata singleton.
func (r *UserRepo) DeleteMetadata(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_metadata WHERE user_id=$1`, uid)
	return err
}

// DeleteProfile removes the user's profile singleton.
func (r *UserRepo) DeleteProfile(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id=$1`, uid)
	return err
}

// CountChatUsers returns the total number of chat users.
func (r *UserRepo) CountChatUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chat_users`)
	return count, err
}

var _ UserRepository = (*UserRepo)(nil)
