package repository

import (
	"context"

	"medigate/domain"
	"medigate/utils"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return utils.TranslateUniqueViolation(err, domain.ErrEmailTaken, domain.ErrPhoneTaken)
	}
	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "phone_number = ?", phone).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepository) UpdateUserStatusIf(ctx context.Context, id string, expect domain.AccountStatus, fields map[string]any) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND account_status = ?", id, expect).
		Updates(fields)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *userRepository) GetPendingVerifications(ctx context.Context) ([]domain.PendingVerification, error) {
	var pending []domain.PendingVerification
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("account_status = ? AND medical_license_number IS NOT NULL", domain.StatusPendingVerification).
		Order("created_at asc").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}
