package usecase

import (
	"errors"

	"presence-backend/internal/repository"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidCredentials = errors.New("invalid username or password")
)
