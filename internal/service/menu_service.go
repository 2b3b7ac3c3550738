package service

import (
	"context"
	"strings"

	"yulebook/internal/domain"
	"yulebook/internal/models"

	"github.com/rs/zerolog"
)

type MenuService struct {
	repo   domain.Repository
	cache  domain.MenuCache
	logger *zerolog.Logger
}

func NewMenuService(repo domain.Repository, cache domain.MenuCache, logger *zerolog.Logger) *MenuService {
	return &MenuService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetAvailableMenu returns the customer menu grouped by course, served from
// cache when warm. Admin mutations invalidate the cache.
func (s *MenuService) GetAvailableMenu(ctx context.Context) (*models.GroupedMenu, error) {
	if s.cache != nil {
		if menu, ok := s.cache.GetMenu(ctx); ok {
			return menu, nil
		}
	}

	items, err := s.repo.GetMenuItems(ctx, true)
	if err != nil {
		return nil, err
	}

	menu := models.GroupMenu(items)
	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, menu); err != nil {
			s.logger.Warn().Err(err).Msg("menu cache set failed")
		}
	}
	return menu, nil
}

// ListAll returns the full catalog for the admin screen, unavailable dishes
// included.
func (s *MenuService) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.GetMenuItems(ctx, false)
}

func (s *MenuService) CreateItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("menu cache invalidate failed")
	}
}

func validateMenuItem(item *models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return validationErrorf("menu item name is required")
	}
	if !models.ValidMenuType(item.Type) {
		return validationErrorf("invalid menu item type: %s", item.Type)
	}
	if item.Price < 0 {
		return validationErrorf("menu item price cannot be negative")
	}
	if item.Surcharge < 0 {
		return validationErrorf("menu item surcharge cannot be negative")
	}
	return nil
}
