package command

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// SeedMenuHandler writes the default catalog on first start
type SeedMenuHandler struct {
	repo domain.Repository
}

// NewSeedMenuHandler creates a new seed menu handler
func NewSeedMenuHandler(repo domain.Repository) *SeedMenuHandler {
	return &SeedMenuHandler{repo: repo}
}

// Handle seeds the default menu unless a menu record already exists, even an
// empty one. It reports whether the seed was written.
func (h *SeedMenuHandler) Handle(ctx context.Context) (bool, error) {
	initialized, err := h.repo.MenuInitialized(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check menu: %w", err)
	}
	if initialized {
		return false, nil
	}

	if err := h.repo.SaveMenuItems(ctx, domain.DefaultMenuItems()); err != nil {
		return false, fmt.Errorf("failed to seed menu: %w", err)
	}

	logger.Info(ctx).
		Int("items", len(domain.DefaultMenuItems())).
		Msg("Default menu seeded")

	return true, nil
}
