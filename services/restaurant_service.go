package services

import (
	"context"
	"strings"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/pkg/apperr"
	"github.com/spywithcode/ReStro/repository"
)

type RestaurantService struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{Repo: repo}
}

type RestaurantIn struct {
	RestaurantID string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	ImageURL     string `json:"imageUrl"`
}

func validateRestaurant(in *RestaurantIn) []apperr.FieldViolation {
	var v []apperr.FieldViolation
	add := func(field, msg string) {
		v = append(v, apperr.FieldViolation{Field: field, Message: msg})
	}
	if strings.TrimSpace(in.RestaurantID) == "" {
		add("id", "Restaurant ID is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		add("name", "Restaurant name is required")
	}
	if len(in.Name) > 100 {
		add("name", "Restaurant name cannot exceed 100 characters")
	}
	if len(in.Description) > 500 {
		add("description", "Description cannot exceed 500 characters")
	}
	if strings.TrimSpace(in.Address) == "" {
		add("address", "Address is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		add("phone", "Phone number is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		add("email", "Email is required")
	}
	return v
}

func (s *RestaurantService) List(ctx context.Context, f repository.RestaurantFilter) ([]entity.Restaurant, error) {
	out, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("failed to list restaurants", err)
	}
	return out, nil
}

func (s *RestaurantService) Get(ctx context.Context, restID string) (*entity.Restaurant, error) {
	rest, err := s.Repo.FindByRestaurantID(ctx, restID)
	if err != nil {
		return nil, apperr.NotFound("Restaurant not found")
	}
	return rest, nil
}

func (s *RestaurantService) Create(ctx context.Context, in *RestaurantIn) (*entity.Restaurant, error) {
	if v := validateRestaurant(in); len(v) > 0 {
		return nil, apperr.Validation("Invalid input data", v)
	}

	exists, err := s.Repo.Exists(ctx, in.RestaurantID)
	if err != nil {
		return nil, apperr.Internal("failed to check restaurant", err)
	}
	if exists {
		return nil, apperr.Conflict("Restaurant with this ID already exists")
	}

	rest := entity.Restaurant{
		RestaurantID: strings.TrimSpace(in.RestaurantID),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		ImageURL:     in.ImageURL,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, &rest); err != nil {
		return nil, apperr.Internal("failed to create restaurant", err)
	}
	return &rest, nil
}

func (s *RestaurantService) Update(ctx context.Context, in *RestaurantIn) (*entity.Restaurant, error) {
	if v := validateRestaurant(in); len(v) > 0 {
		return nil, apperr.Validation("Invalid input data", v)
	}

	rest, err := s.Repo.FindByRestaurantID(ctx, in.RestaurantID)
	if err != nil {
		return nil, apperr.NotFound("Restaurant not found")
	}

	rest.Name = strings.TrimSpace(in.Name)
	rest.Description = in.Description
	rest.Address = strings.TrimSpace(in.Address)
	rest.Phone = strings.TrimSpace(in.Phone)
	rest.Email = strings.ToLower(strings.TrimSpace(in.Email))
	rest.ImageURL = in.ImageURL
	if err := s.Repo.Update(ctx, rest); err != nil {
		return nil, apperr.Internal("failed to update restaurant", err)
	}
	return rest, nil
}

// ทางปกติคือปิดร้าน (isActive=false) ไม่ใช่ลบ
func (s *RestaurantService) Deactivate(ctx context.Context, restID string) error {
	affected, err := s.Repo.Deactivate(ctx, restID)
	if err != nil {
		return apperr.Internal("failed to deactivate restaurant", err)
	}
	if affected == 0 {
		return apperr.NotFound("Restaurant not found")
	}
	return nil
}

// hard delete — admin only, rare
func (s *RestaurantService) Delete(ctx context.Context, restID string) error {
	affected, err := s.Repo.Delete(ctx, restID)
	if err != nil {
		return apperr.Internal("failed to delete restaurant", err)
	}
	if affected == 0 {
		return apperr.NotFound("Restaurant not found")
	}
	return nil
}
