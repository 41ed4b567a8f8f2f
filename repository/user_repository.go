package repository

import (
	"context"
	"time"

	"github.com/spywithcode/ReStro/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uint, hash string, expiry time.Time) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"reset_token":        hash,
		"reset_token_expiry": expiry,
	}).Error
}

// token ยังไม่หมดอายุเท่านั้น
func (r *UserRepository) FindByResetToken(ctx context.Context, hash string) (*entity.User, error) {
	var u entity.User
	err := r.DB.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expiry > ?", hash, time.Now()).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// single-use: เคลียร์ token พร้อมตั้งรหัสใหม่ในคำสั่งเดียว
func (r *UserRepository) ResetPassword(ctx context.Context, id uint, passwordHash string) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"password":           passwordHash,
		"reset_token":        "",
		"reset_token_expiry": nil,
	}).Error
}
