package matching

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyMapping = errors.New("raw pattern and preferred item are required")

type Repository interface {
	FindMatch(ctx context.Context, rawItem string) (string, error)
	CreateMapping(ctx context.Context, rawPattern, preferredItem string) error
}

// Service remembers which short names the user prefers for the long listing
// titles that show up on receipts.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the preferred item name for rawItem, or an empty string if
// no mapping matches.
func (s *Service) Suggest(ctx context.Context, rawItem string) (string, error) {
	if strings.TrimSpace(rawItem) == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, rawItem)
}

// Learn remembers a new mapping between a raw pattern and a preferred item name.
func (s *Service) Learn(ctx context.Context, rawPattern, preferredItem string) error {
	rawPattern = strings.TrimSpace(rawPattern)
	preferredItem = strings.TrimSpace(preferredItem)

	if rawPattern == "" || preferredItem == "" {
		return ErrEmptyMapping
	}

	return s.repo.CreateMapping(ctx, rawPattern, preferredItem)
}

// Rename returns the preferred name for rawItem, falling back to rawItem
// itself when nothing matches.
func (s *Service) Rename(ctx context.Context, rawItem string) (string, error) {
	preferred, err := s.Suggest(ctx, rawItem)
	if err != nil {
		return "", err
	}

	if preferred == "" {
		return rawItem, nil
	}

	return preferred, nil
}
