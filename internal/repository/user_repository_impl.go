package repository

import (
	"errors"

	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Preload("DonorProfile").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByRole(db *gorm.DB, role string) ([]entity.User, error) {
	var users []entity.User
	err := db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindStaffByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.User, error) {
	var users []entity.User
	err := db.Where("hospital_id = ? AND role IN ?", hospitalID, entity.StaffRoles).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Save(user).Error
}

func (r *userRepository) UpdateLastLogin(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.User{}).Where("id = ?", id).
		Update("last_login", gorm.Expr("NOW()")).Error
}

// SetBlocked flips the block flag only when it would actually change,
// so repeated block/unblock calls report 0 affected rows.
func (r *userRepository) SetBlocked(db *gorm.DB, id uuid.UUID, blocked bool) (int64, error) {
	result := db.Model(&entity.User{}).
		Where("id = ? AND is_blocked = ?", id, !blocked).
		Update("is_blocked", blocked)
	return result.RowsAffected, result.Error
}

func (r *userRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.User{}).Error
}

func (r *userRepository) FindAll(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := db.Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
