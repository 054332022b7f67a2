package domain

import "time"

// Calculation is a saved calculator run owned by a user.
type Calculation struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	CalculatorType string         `json:"calculator_type"`
	Inputs         map[string]any `json:"inputs"`
	Results        map[string]any `json:"results"`
	Favorite       bool           `json:"favorite"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CalculationFilter narrows a listing of a user's calculations.
type CalculationFilter struct {
	UserID         string
	CalculatorType string
	FavoritesOnly  bool
}
