package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"fincalc/domain"
	"fincalc/repository"
)

// CalculatorService evaluates catalog calculators and caches their results.
type CalculatorService struct {
	catalog *Catalog
	cache   repository.CacheRepository
	ttl     time.Duration
}

// NewCalculatorService builds the service. A nil cache disables caching.
func NewCalculatorService(catalog *Catalog, cache repository.CacheRepository, ttl time.Duration) *CalculatorService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CalculatorService{
		catalog: catalog,
		cache:   cache,
		ttl:     ttl,
	}
}

func (s *CalculatorService) Catalog() *Catalog {
	return s.catalog
}

// Evaluate runs the calculator for slug. Input is a pointer returned by the
// calculator's NewInput (or the input value). Results are looked up in the
// cache first; cache failures never fail the calculation.
func (s *CalculatorService) Evaluate(ctx context.Context, slug string, input any) (any, error) {
	calc, err := s.catalog.Get(slug)
	if err != nil {
		return nil, err
	}

	key, keyErr := cacheKey(slug, input)
	if keyErr != nil {
		slog.Warn("could not build cache key", "calculator", slug, "error", keyErr)
	}

	if s.cache != nil && keyErr == nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			result := calc.NewResult()
			err := json.Unmarshal([]byte(cached), result)
			if err == nil {
				return result, nil
			}
			slog.Warn("discarding unreadable cached result", "key", key, "error", err)
		}
	}

	result, err := calc.Run(input)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && keyErr == nil {
		data, err := json.Marshal(result)
		if err != nil {
			slog.Warn("failed to encode result for cache", "calculator", slug, "error", err)
		} else if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			slog.Warn("failed to cache result", "calculator", slug, "error", err)
		}
	}

	return result, nil
}

// EvaluateJSON decodes a JSON input document for slug and evaluates it.
// The decoded input is returned alongside the result.
func (s *CalculatorService) EvaluateJSON(ctx context.Context, slug string, raw []byte) (input, result any, err error) {
	calc, err := s.catalog.Get(slug)
	if err != nil {
		return nil, nil, err
	}
	input, err = DecodeInput(calc, raw)
	if err != nil {
		return nil, nil, err
	}
	result, err = s.Evaluate(ctx, slug, input)
	if err != nil {
		return nil, nil, err
	}
	return input, result, nil
}

// DecodeInput strictly decodes raw into a fresh input for calc. Unknown
// fields and malformed JSON are validation errors.
func DecodeInput(calc Calculator, raw []byte) (any, error) {
	input := calc.NewInput()
	if len(bytes.TrimSpace(raw)) == 0 {
		return input, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(input); err != nil {
		return nil, domain.Invalid("input", "invalid JSON: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, domain.Invalid("input", "unexpected data after JSON document")
	}
	return input, nil
}

func cacheKey(slug string, input any) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("calc:%s:%016x", slug, xxhash.Sum64(data)), nil
}
