package repository

import (
	"errors"
	"time"

	authdomain "gitfeed/internal/auth/domain"
	"gitfeed/pkg/apperr"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) FindByToken(token string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("github_access_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to look up user by token", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(githubID int64) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("github_id = ?", githubID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to look up user by id", err)
	}
	return &user, nil
}

// Upsert writes login/email/token for the user's GitHub id, creating the
// row on first login. Runs in a transaction so a failed write never leaves
// a partially updated user.
func (r *userRepository) Upsert(user *authdomain.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing authdomain.User
		err := tx.Where("github_id = ?", user.GitHubID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user.CreatedAt = time.Now()
			user.UpdatedAt = time.Now()
			return tx.Create(user).Error
		}
		if err != nil {
			return err
		}

		user.CreatedAt = existing.CreatedAt
		user.UpdatedAt = time.Now()
		return tx.Model(&existing).Updates(map[string]interface{}{
			"github_login":        user.Login,
			"github_email":        user.Email,
			"github_access_token": user.AccessToken,
			"updated_at":          user.UpdatedAt,
		}).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to upsert user", err)
	}
	return nil
}
