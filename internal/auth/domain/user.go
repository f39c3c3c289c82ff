package domain

import "time"

// User is an OAuth-authenticated GitHub user. The GitHub numeric id is the
// primary key; the application never synthesizes its own user ids.
type User struct {
	GitHubID    int64     `json:"github_id" gorm:"column:github_id;primaryKey"`
	Login       string    `json:"github_login" gorm:"column:github_login;size:40"`
	Email       string    `json:"github_email" gorm:"column:github_email;size:120"`
	AccessToken string    `json:"-" gorm:"column:github_access_token;size:255;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
