package models

import "time"

// DefaultDisplayName is used when neither the directory nor the store
// has a display name for an account.
const DefaultDisplayName = "New User"

// ChatUser mirrors an identity-directory account in the content store.
type ChatUser struct {
	UID         string     `db:"uid" json:"uid"`
	DisplayName string     `db:"display_name" json:"display_name"`
	PhotoURL    string     `db:"photo_url" json:"photo_url"`
	Email       string     `db:"email" json:"email"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	LastSeen    time.Time  `db:"last_seen" json:"last_seen"`
	MigratedAt  *time.Time `db:"migrated_at" json:"migrated_at,omitempty"`
}

// BannedUser records who banned an account, when and why. The primary
// ban state is the directory's disabled flag; this row is the secondary
// signal.
type BannedUser struct {
	UID      string    `db:"uid" json:"uid"`
	BannedAt time.Time `db:"banned_at" json:"banned_at"`
	BannedBy string    `db:"banned_by" json:"banned_by"`
	Reason   string    `db:"reason" json:"reason"`
}
