package repository

import authdomain "gitfeed/internal/auth/domain"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByToken looks a user up by access token; nil when absent
	FindByToken(token string) (*authdomain.User, error)
	// FindByID looks a user up by their GitHub id; nil when absent
	FindByID(githubID int64) (*authdomain.User, error)
	// Upsert creates or updates the row for the user's GitHub id
	Upsert(user *authdomain.User) error
}
