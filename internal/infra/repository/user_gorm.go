package repository

import (
	"context"
	"errors"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// 学生証番号で利用者を取得
func (r *UserGormRepository) FindByStudentID(ctx context.Context, studentID string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// 利用者の登録。学生証番号の重複はErrDuplicateに変換する。
func (r *UserGormRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return model.User{}, repo.ErrDuplicate
		}
		return model.User{}, err
	}
	return u, nil
}
