package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// 管理画面の単一管理者ログイン。
// パスワードは環境変数のbcryptハッシュと照合し、HS256のトークンを発行する。
type AuthUsecase struct {
	passwordHash string
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// DI
func NewAuthUsecase(passwordHash string, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     24 * time.Hour,
	}
}

type LoginInput struct {
	Password string `json:"password"`
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "password required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	}

	now := time.Now()
	expiresAt := now.Add(u.tokenTTL)

	claims := jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return LoginOutput{Token: signed, ExpiresAt: expiresAt}, nil
}
