package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pacsboard/pacsboard/internal/models"
)

// UserRepository handles console account storage.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns all accounts ordered by username. Password hashes are not
// selected.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Select("user_id", "username", "full_name", "role").
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID retrieves an account by id.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves an account by username, including the password
// hash for credential checks.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. A duplicate username surfaces as
// gorm.ErrDuplicatedKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update writes username, full name and role, and the password hash only
// when one is supplied.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	updates := map[string]interface{}{
		"username":  user.Username,
		"full_name": user.FullName,
		"role":      user.Role,
	}
	if user.PasswordHash != "" {
		updates["password_hash"] = user.PasswordHash
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePasswordHash replaces only the stored hash.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an account. Deleting an unknown id returns
// gorm.ErrRecordNotFound.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
