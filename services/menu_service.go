package services

import (
	"context"
	"strings"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/notify"
	"github.com/spywithcode/ReStro/pkg/apperr"
	"github.com/spywithcode/ReStro/repository"
)

type MenuService struct {
	Repo     *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
	Notifier notify.Notifier
}

func NewMenuService(repo *repository.MenuRepository, restRepo *repository.RestaurantRepository, notifier notify.Notifier) *MenuService {
	return &MenuService{Repo: repo, RestRepo: restRepo, Notifier: notifier}
}

type MenuItemIn struct {
	ItemID       string  `json:"id"`
	RestaurantID string  `json:"restaurantId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"imageUrl"`
	IsAvailable  *bool   `json:"isAvailable"`
}

func validateMenuItem(in *MenuItemIn) []apperr.FieldViolation {
	var v []apperr.FieldViolation
	add := func(field, msg string) {
		v = append(v, apperr.FieldViolation{Field: field, Message: msg})
	}
	if strings.TrimSpace(in.ItemID) == "" {
		add("id", "Item ID is required")
	}
	if strings.TrimSpace(in.RestaurantID) == "" {
		add("restaurantId", "Restaurant ID is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		add("name", "Name is required")
	}
	if len(in.Name) > 100 {
		add("name", "Name cannot exceed 100 characters")
	}
	if len(in.Description) > 500 {
		add("description", "Description cannot exceed 500 characters")
	}
	if in.Price < 0 {
		add("price", "Price must be positive")
	}
	if !entity.ValidCategory(in.Category) {
		add("category", "Category must be one of: Appetizer, Main Course, Dessert, Beverage")
	}
	return v
}

func (s *MenuService) List(ctx context.Context, f repository.MenuFilter) ([]entity.MenuItem, error) {
	items, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("failed to list menu items", err)
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, restID, itemID string) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByItemID(ctx, restID, itemID)
	if err != nil {
		return nil, apperr.NotFound("Menu item not found")
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, in *MenuItemIn) (*entity.MenuItem, error) {
	if v := validateMenuItem(in); len(v) > 0 {
		return nil, apperr.Validation("Invalid input data", v)
	}

	ok, err := s.RestRepo.Exists(ctx, in.RestaurantID)
	if err != nil {
		return nil, apperr.Internal("failed to check restaurant", err)
	}
	if !ok {
		return nil, apperr.NotFound("Restaurant not found")
	}

	exists, err := s.Repo.ItemExists(ctx, in.RestaurantID, in.ItemID)
	if err != nil {
		return nil, apperr.Internal("failed to check menu item", err)
	}
	if exists {
		return nil, apperr.Conflict("Menu item with this ID already exists")
	}

	item := entity.MenuItem{
		ItemID:       strings.TrimSpace(in.ItemID),
		RestaurantID: in.RestaurantID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
		IsAvailable:  true,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if err := s.Repo.Create(ctx, &item); err != nil {
		return nil, apperr.Internal("failed to create menu item", err)
	}

	s.Notifier.Publish(item.RestaurantID, notify.CollectionMenu)
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, in *MenuItemIn) (*entity.MenuItem, error) {
	if v := validateMenuItem(in); len(v) > 0 {
		return nil, apperr.Validation("Invalid input data", v)
	}

	item, err := s.Repo.FindByItemID(ctx, in.RestaurantID, in.ItemID)
	if err != nil {
		return nil, apperr.NotFound("Menu item not found")
	}

	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.Price = in.Price
	item.Category = in.Category
	item.ImageURL = in.ImageURL
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, apperr.Internal("failed to update menu item", err)
	}

	s.Notifier.Publish(item.RestaurantID, notify.CollectionMenu)
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, restID, itemID string) error {
	affected, err := s.Repo.Delete(ctx, restID, itemID)
	if err != nil {
		return apperr.Internal("failed to delete menu item", err)
	}
	if affected == 0 {
		return apperr.NotFound("Menu item not found")
	}
	s.Notifier.Publish(restID, notify.CollectionMenu)
	return nil
}
