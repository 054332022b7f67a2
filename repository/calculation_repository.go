package repository

import (
	"context"
	"time"

	"fincalc/domain"
)

// CalculationRepository persists saved calculator runs.
// Listings are ordered newest first.
type CalculationRepository interface {
	Create(ctx context.Context, c domain.Calculation) error
	Get(ctx context.Context, id string) (domain.Calculation, error)
	List(ctx context.Context, filter domain.CalculationFilter) ([]domain.Calculation, error)
	SetFavorite(ctx context.Context, id string, favorite bool, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists site accounts. Emails are stored as given;
// callers normalise them.
type UserRepository interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}
