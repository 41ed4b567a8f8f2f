package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/notify"
	"github.com/spywithcode/ReStro/pkg/apperr"
	"github.com/spywithcode/ReStro/repository"

	qrcode "github.com/skip2/go-qrcode"
)

type TableService struct {
	Repo     *repository.TableRepository
	RestRepo *repository.RestaurantRepository
	Notifier notify.Notifier
	BaseURL  string
}

func NewTableService(repo *repository.TableRepository, restRepo *repository.RestaurantRepository, notifier notify.Notifier, baseURL string) *TableService {
	return &TableService{Repo: repo, RestRepo: restRepo, Notifier: notifier, BaseURL: baseURL}
}

type TableIn struct {
	TableNo      int    `json:"id"`
	RestaurantID string `json:"restaurantId"`
	Capacity     int    `json:"capacity"`
}

// CustomerURL คือปลายทางที่ QR ของโต๊ะชี้ไป
func (s *TableService) CustomerURL(restID string, tableNo int) string {
	return fmt.Sprintf("%s/customer/login/%s/%d", s.BaseURL, restID, tableNo)
}

// QR image URL เก็บลง DB ตรง ๆ (ภาพจริง render โดย endpoint ภายนอก)
func (s *TableService) qrCodeURL(restID string, tableNo int) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=256x256&data=" +
		url.QueryEscape(s.CustomerURL(restID, tableNo))
}

func (s *TableService) List(ctx context.Context, f repository.TableFilter) ([]entity.Table, error) {
	tables, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("failed to list tables", err)
	}
	return tables, nil
}

func (s *TableService) Get(ctx context.Context, restID string, tableNo int) (*entity.Table, error) {
	t, err := s.Repo.Find(ctx, restID, tableNo)
	if err != nil {
		return nil, apperr.NotFound("Table not found")
	}
	return t, nil
}

func (s *TableService) Create(ctx context.Context, in *TableIn) (*entity.Table, error) {
	var v []apperr.FieldViolation
	if in.TableNo < 1 {
		v = append(v, apperr.FieldViolation{Field: "id", Message: "Table ID must be positive"})
	}
	if in.Capacity < 1 {
		v = append(v, apperr.FieldViolation{Field: "capacity", Message: "Capacity must be at least 1"})
	}
	if in.Capacity > 20 {
		v = append(v, apperr.FieldViolation{Field: "capacity", Message: "Capacity cannot exceed 20"})
	}
	if in.RestaurantID == "" {
		v = append(v, apperr.FieldViolation{Field: "restaurantId", Message: "Restaurant ID is required"})
	}
	if len(v) > 0 {
		return nil, apperr.Validation("Invalid input data", v)
	}

	ok, err := s.RestRepo.Exists(ctx, in.RestaurantID)
	if err != nil {
		return nil, apperr.Internal("failed to check restaurant", err)
	}
	if !ok {
		return nil, apperr.NotFound("Restaurant not found")
	}

	exists, err := s.Repo.Exists(ctx, in.RestaurantID, in.TableNo)
	if err != nil {
		return nil, apperr.Internal("failed to check table", err)
	}
	if exists {
		return nil, apperr.Conflict("Table with this ID already exists for this restaurant")
	}

	t := entity.Table{
		TableNo:      in.TableNo,
		RestaurantID: in.RestaurantID,
		Capacity:     in.Capacity,
		Status:       entity.TableFree,
		QRCodeURL:    s.qrCodeURL(in.RestaurantID, in.TableNo),
	}
	if err := s.Repo.Create(ctx, &t); err != nil {
		return nil, apperr.Internal("failed to create table", err)
	}

	s.Notifier.Publish(t.RestaurantID, notify.CollectionTables)
	return &t, nil
}

func (s *TableService) UpdateStatus(ctx context.Context, restID string, tableNo int, status string) (*entity.Table, error) {
	if !entity.ValidTableStatus(status) {
		return nil, apperr.Validation("Invalid input data", []apperr.FieldViolation{
			{Field: "status", Message: "Status must be one of: Free, Occupied, Requires-Cleaning"},
		})
	}
	affected, err := s.Repo.UpdateStatus(ctx, restID, tableNo, status)
	if err != nil {
		return nil, apperr.Internal("failed to update table status", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Table not found")
	}
	s.Notifier.Publish(restID, notify.CollectionTables)
	return s.Get(ctx, restID, tableNo)
}

// admin escape hatch
func (s *TableService) Delete(ctx context.Context, restID string, tableNo int) error {
	affected, err := s.Repo.Delete(ctx, restID, tableNo)
	if err != nil {
		return apperr.Internal("failed to delete table", err)
	}
	if affected == 0 {
		return apperr.NotFound("Table not found")
	}
	s.Notifier.Publish(restID, notify.CollectionTables)
	return nil
}

// QRCodePNG renders the table's QR locally (256px) so the dashboard does
// not depend on the external image endpoint.
func (s *TableService) QRCodePNG(ctx context.Context, restID string, tableNo int) ([]byte, error) {
	if _, err := s.Repo.Find(ctx, restID, tableNo); err != nil {
		return nil, apperr.NotFound("Table not found")
	}
	png, err := qrcode.Encode(s.CustomerURL(restID, tableNo), qrcode.Medium, 256)
	if err != nil {
		return nil, apperr.Internal("failed to render QR code", err)
	}
	return png, nil
}
