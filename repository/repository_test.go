package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spywithcode/ReStro/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Restaurant{}, &entity.MenuItem{},
		&entity.Table{}, &entity.Order{}, &entity.OrderItem{},
	))
	return db
}

func seedRestaurants(t *testing.T, db *gorm.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, db.Create(&entity.Restaurant{
			RestaurantID: id, Name: id, Address: "-", Phone: "-", Email: id + "@x.io", IsActive: true,
		}).Error)
	}
}

func TestMenuListScopedByRestaurant(t *testing.T) {
	db := setupDB(t)
	seedRestaurants(t, db, "r1", "r2")
	repo := NewMenuRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.MenuItem{ItemID: "m1", RestaurantID: "r1", Name: "Soup", Price: 40, Category: entity.CategoryAppetizer, IsAvailable: true}))
	require.NoError(t, repo.Create(ctx, &entity.MenuItem{ItemID: "m2", RestaurantID: "r2", Name: "Cake", Price: 60, Category: entity.CategoryDessert, IsAvailable: true}))

	items, err := repo.List(ctx, MenuFilter{RestaurantID: "r1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ItemID)
	for _, it := range items {
		assert.Equal(t, "r1", it.RestaurantID)
	}

	// ไม่ส่ง filter = admin อ่านทุกร้านโดยตั้งใจ
	all, err := repo.List(ctx, MenuFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMenuItemIDUniquePerTenantOnly(t *testing.T) {
	db := setupDB(t)
	seedRestaurants(t, db, "r1", "r2")
	repo := NewMenuRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.MenuItem{ItemID: "m1", RestaurantID: "r1", Name: "Soup", Category: entity.CategoryAppetizer}))

	// item id เดียวกันคนละร้าน = ได้
	require.NoError(t, repo.Create(ctx, &entity.MenuItem{ItemID: "m1", RestaurantID: "r2", Name: "Soup", Category: entity.CategoryAppetizer}))

	// ร้านเดียวกันซ้ำ = unique index กัน
	err := repo.Create(ctx, &entity.MenuItem{ItemID: "m1", RestaurantID: "r1", Name: "Soup2", Category: entity.CategoryAppetizer})
	assert.Error(t, err)
}

func TestOrderListScopedByRestaurant(t *testing.T) {
	db := setupDB(t)
	seedRestaurants(t, db, "r1", "r2")
	repo := NewOrderRepository(db)
	ctx := context.Background()

	for i, rid := range []string{"r1", "r1", "r2"} {
		o := entity.Order{
			OrderID: fmt.Sprintf("ORD-%s-%d", rid, i), RestaurantID: rid,
			TableNumber: 1, Status: entity.StatusPlaced, Total: 100,
			PlacedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.CreateOrder(db, &o))
	}

	orders, err := repo.List(ctx, OrderFilter{RestaurantID: "r1"})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "r1", o.RestaurantID)
	}

	// เรียงใหม่สุดก่อน
	assert.True(t, orders[0].PlacedAt.After(orders[1].PlacedAt) || orders[0].PlacedAt.Equal(orders[1].PlacedAt))
}

func TestOrderStatusGuardIsCompareAndSwap(t *testing.T) {
	db := setupDB(t)
	seedRestaurants(t, db, "r1")
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := entity.Order{OrderID: "ORD-R1-1", RestaurantID: "r1", TableNumber: 1, Status: entity.StatusPreparing, PlacedAt: time.Now()}
	require.NoError(t, repo.CreateOrder(db, &o))

	affected, err := repo.UpdateStatusGuard(ctx, "ORD-R1-1", entity.StatusPreparing, entity.StatusReady, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// สถานะขยับไปแล้ว ยิงซ้ำด้วย from เดิมต้องไม่โดน
	affected, err = repo.UpdateStatusGuard(ctx, "ORD-R1-1", entity.StatusPreparing, entity.StatusReady, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestTableCompositeKeyScoping(t *testing.T) {
	db := setupDB(t)
	seedRestaurants(t, db, "r1", "r2")
	repo := NewTableRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Table{TableNo: 1, RestaurantID: "r1", Capacity: 4, Status: entity.TableFree}))
	require.NoError(t, repo.Create(ctx, &entity.Table{TableNo: 1, RestaurantID: "r2", Capacity: 2, Status: entity.TableFree}))

	exists, err := repo.Exists(ctx, "r1", 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "r1", 2)
	require.NoError(t, err)
	assert.False(t, exists)

	tables, err := repo.List(ctx, TableFilter{RestaurantID: "r2"})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 2, tables[0].Capacity)
}

func TestIdempotentRead(t *testing.T) {
	db := setupDB(t)
	seedRestaurants(t, db, "r1")
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := entity.Order{
		OrderID: "ORD-R1-7", RestaurantID: "r1", TableNumber: 3,
		Status: entity.StatusPlaced, Total: 250, PlacedAt: time.Now(),
		Items: []entity.OrderItem{{MenuItemID: "m1", Name: "Soup", UnitPrice: 125, Quantity: 2, LineTotal: 250}},
	}
	require.NoError(t, repo.CreateOrder(db, &o))

	first, err := repo.FindByOrderID(ctx, "ORD-R1-7")
	require.NoError(t, err)
	second, err := repo.FindByOrderID(ctx, "ORD-R1-7")
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Status, second.Status)
	require.Len(t, second.Items, 1)
	assert.Equal(t, first.Items[0].LineTotal, second.Items[0].LineTotal)
}
