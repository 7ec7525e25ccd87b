package authz

import "strings"

// Policy decides whether a caller identity may run admin operations.
type Policy interface {
	Allow(email string) bool
}

// AllowList authorizes a fixed set of admin emails supplied at startup.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList builds an AllowList; emails are compared case-insensitively.
func NewAllowList(emails []string) *AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			set[email] = struct{}{}
		}
	}
	return &AllowList{emails: set}
}

// Allow reports whether the email belongs to an admin.
func (l *AllowList) Allow(email string) bool {
	if email == "" {
		return false
	}
	_, ok := l.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

var _ Policy = (*AllowList)(nil)
