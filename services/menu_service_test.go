package services

import (
	"context"
	"testing"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/pkg/apperr"
	"github.com/spywithcode/ReStro/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuService(t *testing.T) (*MenuService, *recordingNotifier) {
	t.Helper()
	db := setupDB(t)
	seedRestaurant(t, db, "r1")
	seedRestaurant(t, db, "r2")
	n := &recordingNotifier{}
	svc := NewMenuService(repository.NewMenuRepository(db), repository.NewRestaurantRepository(db), n)
	return svc, n
}

func menuIn(restID string) *MenuItemIn {
	return &MenuItemIn{
		ItemID: "m1", RestaurantID: restID, Name: "Paneer Tikka",
		Description: "Char-grilled", Price: 100, Category: entity.CategoryMainCourse,
	}
}

func TestCreateMenuItemUniquenessIsTenantScoped(t *testing.T) {
	svc, n := newMenuService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, menuIn("r1"))
	require.NoError(t, err)
	assert.Contains(t, n.published(), "r1/menu")

	// ซ้ำในร้านเดิม = Conflict
	_, err = svc.Create(ctx, menuIn("r1"))
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// id เดิมร้านอื่น = ผ่าน
	_, err = svc.Create(ctx, menuIn("r2"))
	assert.NoError(t, err)
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc, _ := newMenuService(t)

	_, err := svc.Create(context.Background(), &MenuItemIn{
		ItemID: "", RestaurantID: "r1", Name: "", Price: -5, Category: "Snack",
	})
	require.Error(t, err)

	e, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindValidation, e.Kind)

	fields := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "category")
}

func TestUpdateMenuItemAvailability(t *testing.T) {
	svc, _ := newMenuService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, menuIn("r1"))
	require.NoError(t, err)
	assert.True(t, created.IsAvailable)

	in := menuIn("r1")
	unavailable := false
	in.IsAvailable = &unavailable
	in.Price = 120

	updated, err := svc.Update(ctx, in)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, 120.0, updated.Price)

	// customer filter ไม่เห็นของที่ปิดขาย
	avail := true
	items, err := svc.List(ctx, repository.MenuFilter{RestaurantID: "r1", IsAvailable: &avail})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteMenuItem(t *testing.T) {
	svc, _ := newMenuService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, menuIn("r1"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "r1", "m1"))
	err = svc.Delete(ctx, "r1", "m1")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteMenuItemFreesIDForReuse(t *testing.T) {
	svc, _ := newMenuService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, menuIn("r1"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "r1", "m1"))

	// ลบแล้วต้องสร้าง id เดิมใหม่ได้ ไม่ใช่ 500 จาก unique index
	in := menuIn("r1")
	in.Name = "Paneer Tikka v2"
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Paneer Tikka v2", created.Name)

	items, err := svc.List(ctx, repository.MenuFilter{RestaurantID: "r1"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
