package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"
	"kiosk/internal/validator"
)

type UserUsecase struct {
	users repo.UserRepository
}

// DI
func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

type RegisterUserInput struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

// 利用者の登録。学生証番号の重複は409で返す。
func (u *UserUsecase) RegisterUser(ctx context.Context, in RegisterUserInput) (model.User, error) {
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.Name = strings.TrimSpace(in.Name)

	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("validation failed: %s", errs[0]))
	}

	user, err := u.users.Create(ctx, model.User{
		StudentID: in.StudentID,
		Name:      in.Name,
	})
	if err == repo.ErrDuplicate {
		return model.User{}, NewHTTPError(http.StatusConflict, "student_id_taken")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}
