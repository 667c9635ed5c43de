package repository

import (
	"context"

	"kiosk/internal/domain/model"
)

type UserRepository interface {
	FindByStudentID(ctx context.Context, studentID string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}
