package ports

import (
	"context"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// HouseholdRepository defines the persistence interface for household records.
type HouseholdRepository interface {
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Household, error)
	Create(ctx context.Context, household *domain.Household) (*domain.Household, error)
}
