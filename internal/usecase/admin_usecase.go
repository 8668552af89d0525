package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"presence-backend/internal/model"
	"presence-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AdminUsecase struct {
	repo      *repository.AdminRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAdminUsecase(repo *repository.AdminRepository, jwtSecret string, tokenTTL time.Duration) *AdminUsecase {
	return &AdminUsecase{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (u *AdminUsecase) Register(ctx context.Context, name, username, password string) (*model.Admin, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	// 1. Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 2. Save
	admin := &model.Admin{
		Name:     name,
		Username: username,
		Password: string(hashedPassword),
		Role:     model.RoleAdmin,
	}
	if err := u.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Login checks the credentials and returns a signed HS256 token.
func (u *AdminUsecase) Login(ctx context.Context, username, password string) (string, *model.Admin, error) {
	// 1. Find admin by username
	admin, err := u.repo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	// 2. Compare password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// 3. Issue JWT
	claims := jwt.MapClaims{
		"user_id":  admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
		"exp":      time.Now().Add(u.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return t, admin, nil
}
