package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fincalc/domain"
	"fincalc/repository"
)

// CalculationService manages a user's saved calculator runs. Every
// operation is scoped to the calling user; records owned by someone else
// behave as if they did not exist.
type CalculationService struct {
	repo        repository.CalculationRepository
	calculators *CalculatorService
	now         func() time.Time
}

func NewCalculationService(repo repository.CalculationRepository, calculators *CalculatorService) *CalculationService {
	return &CalculationService{
		repo:        repo,
		calculators: calculators,
		now:         time.Now,
	}
}

// Save re-runs the calculator on the submitted inputs and stores both.
func (s *CalculationService) Save(
	ctx context.Context,
	userID, slug string,
	rawInput []byte,
) (domain.Calculation, error) {

	if userID == "" {
		return domain.Calculation{}, domain.ErrUnauthenticated
	}

	input, result, err := s.calculators.EvaluateJSON(ctx, slug, rawInput)
	if err != nil {
		return domain.Calculation{}, err
	}

	inputs, err := toMap(input)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("encode inputs: %w", err)
	}
	results, err := toMap(result)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("encode results: %w", err)
	}

	now := s.now().UTC()
	calc := domain.Calculation{
		ID:             uuid.NewString(),
		UserID:         userID,
		CalculatorType: slug,
		Inputs:         inputs,
		Results:        results,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, calc); err != nil {
		return domain.Calculation{}, fmt.Errorf("save calculation: %w", err)
	}
	return calc, nil
}

func (s *CalculationService) List(ctx context.Context, userID string, favoritesOnly bool) ([]domain.Calculation, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.List(ctx, domain.CalculationFilter{UserID: userID, FavoritesOnly: favoritesOnly})
}

func (s *CalculationService) Get(ctx context.Context, userID, id string) (domain.Calculation, error) {
	if userID == "" {
		return domain.Calculation{}, domain.ErrUnauthenticated
	}
	calc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Calculation{}, err
	}
	if calc.UserID != userID {
		return domain.Calculation{}, domain.ErrNotFound
	}
	return calc, nil
}

func (s *CalculationService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// SetFavorite marks or unmarks a saved calculation and returns the updated record.
func (s *CalculationService) SetFavorite(ctx context.Context, userID, id string, favorite bool) (domain.Calculation, error) {
	calc, err := s.Get(ctx, userID, id)
	if err != nil {
		return domain.Calculation{}, err
	}
	at := s.now().UTC()
	if err := s.repo.SetFavorite(ctx, id, favorite, at); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Calculation{}, err
		}
		return domain.Calculation{}, fmt.Errorf("update favorite: %w", err)
	}
	calc.Favorite = favorite
	calc.UpdatedAt = at
	return calc, nil
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
