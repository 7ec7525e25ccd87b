package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS chat_users (
            uid TEXT PRIMARY KEY,
            display_name TEXT NOT NULL DEFAULT '',
            photo_url TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            last_seen TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            migrated_at TIMESTAMPTZ
        );`,
		`CREATE TABLE IF NOT EXISTS friends (
            user_id TEXT NOT NULL,
            friend_id TEXT NOT NULL,
            PRIMARY KEY (user_id, friend_id)
        );`,
		`CREATE TABLE IF NOT EXISTS friend_requests (
            user_id TEXT NOT NULL,
            from_user_id TEXT NOT NULL,
            PRIMARY KEY (user_id, from_user_id)
        );`,
		`CREATE TABLE IF NOT EXISTS sent_requests (
            user_id TEXT NOT NULL,
            to_user_id TEXT NOT NULL,
            PRIMARY KEY (user_id, to_user_id)
        );`,
		`CREATE TABLE IF NOT EXISTS share_requests (
            user_id TEXT NOT NULL,
            request_id TEXT NOT NULL,
            PRIMARY KEY (user_id, request_id)
        );`,
		`CREATE TABLE IF NOT EXISTS user_metadata (
            user_id TEXT PRIMARY KEY,
            payload JSONB NOT NULL DEFAULT '{}'
        );`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
            user_id TEXT PRIMARY KEY,
            payload JSONB NOT NULL DEFAULT '{}'
        );`,
		`CREATE TABLE IF NOT EXISTS posts (
            id TEXT PRIMARY KEY,
            author_id TEXT NOT NULL,
            comment_count INT NOT NULL DEFAULT 0 CHECK (comment_count >= 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS comments (
            id TEXT PRIMARY KEY,
            post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
            author_id TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS vocabulary_entries (
            user_id TEXT NOT NULL,
            entry_id TEXT NOT NULL,
            PRIMARY KEY (user_id, entry_id)
        );`,
		`CREATE TABLE IF NOT EXISTS conversations (
            id TEXT PRIMARY KEY,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS conversation_participants (
            conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
            user_id TEXT NOT NULL,
            PRIMARY KEY (conversation_id, user_id)
        );`,
		`CREATE TABLE IF NOT EXISTS conversation_messages (
            id TEXT PRIMARY KEY,
            conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
            sender_id TEXT NOT NULL,
            content TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS banned_users (
            uid TEXT PRIMARY KEY,
            banned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            banned_by TEXT NOT NULL,
            reason TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_posts_author ON posts (author_id);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_author ON comments (author_id);`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_participants_user ON conversation_participants (user_id);`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
