package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "quizku_backend/internals/features/users/auth/model"
	userModel "quizku_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmailOrUsername(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	identifier = strings.TrimSpace(identifier)
	var user userModel.UserModel
	if err := db.Where("email = ? OR user_name = ?", strings.ToLower(identifier), identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByUsername(db *gorm.DB, username string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_name = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmailOrUsername is the duplicate check before registration.
func ExistsByEmailOrUsername(db *gorm.DB, email, username string) (bool, error) {
	var n int64
	err := db.Model(&userModel.UserModel{}).
		Where("email = ? OR user_name = ?", strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(username)).
		Count(&n).Error
	return n > 0, err
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newPasswordHash string) error {
	res := db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newPasswordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetBlocked flips is_blocked for username. gorm.ErrRecordNotFound when absent.
func SetBlocked(db *gorm.DB, username string, blocked bool) (*userModel.UserModel, error) {
	user, err := FindUserByUsername(db, username)
	if err != nil {
		return nil, err
	}
	if err := db.Model(user).Update("is_blocked", blocked).Error; err != nil {
		return nil, err
	}
	user.IsBlocked = blocked
	return user, nil
}

// SearchUsers matches a case-insensitive username fragment.
func SearchUsers(db *gorm.DB, part string) ([]userModel.UserModel, error) {
	var users []userModel.UserModel
	pattern := "%" + strings.ToLower(strings.TrimSpace(part)) + "%"
	err := db.Where("LOWER(user_name) LIKE ?", pattern).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

// ListUsers returns accounts in creation order. limit <= 0 means all.
func ListUsers(db *gorm.DB, offset, limit int) ([]userModel.UserModel, int64, error) {
	var (
		users []userModel.UserModel
		total int64
	)
	q := db.Model(&userModel.UserModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q = q.Order("created_at ASC").Order("user_name ASC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func FindUsersByIDs(db *gorm.DB, ids []uuid.UUID) ([]userModel.UserModel, error) {
	var users []userModel.UserModel
	if len(ids) == 0 {
		return users, nil
	}
	err := db.Where("id IN ?", ids).Order("created_at ASC").Find(&users).Error
	return users, err
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken stores the token digest until expiresAt. Re-adding refreshes the expiry.
func BlacklistToken(db *gorm.DB, digest string, expiresAt time.Time) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(&authModel.TokenBlacklist{
		Token:     digest,
		ExpiredAt: expiresAt.UTC(),
	}).Error
}

func IsBlacklisted(db *gorm.DB, digest string, now time.Time) (bool, error) {
	var n int64
	err := db.Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", digest, now.UTC()).
		Count(&n).Error
	return n > 0, err
}

func CleanupExpiredBlacklist(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expired_at <= ?", now.UTC()).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
