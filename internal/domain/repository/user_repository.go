package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetActiveByUsername returns nil when no active user has that username.
	GetActiveByUsername(ctx context.Context, username string) (*entity.User, error)
	// ListActiveByRole returns every active user holding role.
	ListActiveByRole(ctx context.Context, role enum.Role) ([]entity.User, error)
}
