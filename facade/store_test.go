package facade

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/mailer"
	"github.com/spywithcode/ReStro/notify"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// noopNotifier: store test ไม่สนใจ fan-out แค่ต้องการ interface ครบ
type noopNotifier struct{}

func (noopNotifier) Subscribe(tenantID, collection, subscriberID string, fn notify.Callback) func() {
	return func() {}
}
func (noopNotifier) Publish(tenantID, collection string) {}

func setupStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:facade_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Restaurant{}, &entity.MenuItem{},
		&entity.Table{}, &entity.Order{}, &entity.OrderItem{},
	))

	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	n := noopNotifier{}
	store := NewStore(
		services.NewRestaurantService(restRepo),
		services.NewMenuService(menuRepo, restRepo, n),
		services.NewTableService(tableRepo, restRepo, n, "http://localhost:3000"),
		services.NewOrderService(db, orderRepo, n),
		services.NewAuthService(userRepo, restRepo, mailer.LogMailer{}, "test-secret", "http://localhost:3000", time.Hour),
		n,
		&MemorySelectionStore{},
	)
	return store, db
}

func seedTenant(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&entity.Restaurant{
		RestaurantID: id, Name: id, Address: "-", Phone: "-", Email: id + "@x.io", IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&entity.MenuItem{
		ItemID: "m1", RestaurantID: id, Name: "Paneer Tikka",
		Price: 100, Category: entity.CategoryMainCourse, IsAvailable: true,
	}).Error)
	require.NoError(t, db.Create(&entity.Table{
		TableNo: 1, RestaurantID: id, Capacity: 4, Status: entity.TableFree,
	}).Error)
}

func TestSelectTenantLoadsSnapshot(t *testing.T) {
	store, db := setupStore(t)
	seedTenant(t, db, "r1")

	require.NoError(t, store.SelectTenant(context.Background(), "r1"))
	assert.Equal(t, "r1", store.CurrentTenant())

	snap := store.Snapshot()
	require.NotNil(t, snap.Restaurant)
	assert.Equal(t, "r1", snap.Restaurant.RestaurantID)
	assert.Len(t, snap.Menu, 1)
	assert.Len(t, snap.Tables, 1)
	assert.Empty(t, snap.Orders)
}

func TestSelectTenantPersistsAcrossRestore(t *testing.T) {
	store, db := setupStore(t)
	seedTenant(t, db, "r1")
	ctx := context.Background()

	require.NoError(t, store.SelectTenant(ctx, "r1"))

	// store ใหม่ใช้ selection เดิม
	fresh := NewStore(store.Restaurants, store.Menu, store.Tables, store.Orders, store.Auth,
		noopNotifier{}, store.selection)
	require.NoError(t, fresh.Restore(ctx))
	assert.Equal(t, "r1", fresh.CurrentTenant())
	assert.NotNil(t, fresh.Snapshot().Restaurant)
}

func TestSwitchTenantDropsStaleCache(t *testing.T) {
	store, db := setupStore(t)
	seedTenant(t, db, "r1")
	seedTenant(t, db, "r2")
	ctx := context.Background()

	require.NoError(t, store.SelectTenant(ctx, "r1"))
	require.NoError(t, db.Create(&entity.MenuItem{
		ItemID: "m2", RestaurantID: "r2", Name: "Gulab Jamun",
		Price: 60, Category: entity.CategoryDessert, IsAvailable: true,
	}).Error)

	require.NoError(t, store.SelectTenant(ctx, "r2"))
	snap := store.Snapshot()
	assert.Equal(t, "r2", snap.Restaurant.RestaurantID)
	require.Len(t, snap.Menu, 2)
	for _, m := range snap.Menu {
		assert.Equal(t, "r2", m.RestaurantID)
	}
}

func TestReloadPartialFailureKeepsOldData(t *testing.T) {
	store, db := setupStore(t)
	seedTenant(t, db, "r1")
	ctx := context.Background()

	require.NoError(t, store.SelectTenant(ctx, "r1"))
	before := store.Snapshot()
	require.NotNil(t, before.Restaurant)

	// ร้านหายจาก DB → reload ต้อง error แต่ cache เดิมยังอยู่
	require.NoError(t, db.Unscoped().Where("restaurant_id = ?", "r1").Delete(&entity.Restaurant{}).Error)

	err := store.Reload(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restaurant")

	after := store.Snapshot()
	require.NotNil(t, after.Restaurant)
	assert.Equal(t, "r1", after.Restaurant.RestaurantID)
	assert.Len(t, after.Menu, 1)
}

func TestMutatorsPatchCacheOnlyOnSuccess(t *testing.T) {
	store, db := setupStore(t)
	seedTenant(t, db, "r1")
	ctx := context.Background()

	require.NoError(t, store.SelectTenant(ctx, "r1"))

	// สำเร็จ → cache โต
	_, err := store.AddMenuItem(ctx, &services.MenuItemIn{
		ItemID: "m2", RestaurantID: "r1", Name: "Masala Chai",
		Price: 40, Category: entity.CategoryBeverage,
	})
	require.NoError(t, err)
	assert.Len(t, store.Snapshot().Menu, 2)

	// id ซ้ำ → Conflict และ cache ไม่ขยับ
	_, err = store.AddMenuItem(ctx, &services.MenuItemIn{
		ItemID: "m2", RestaurantID: "r1", Name: "Dup",
		Price: 40, Category: entity.CategoryBeverage,
	})
	require.Error(t, err)
	assert.Len(t, store.Snapshot().Menu, 2)

	order, err := store.PlaceOrder(ctx, &services.CreateOrderReq{
		RestaurantID: "r1",
		TableNumber:  1,
		Items: []services.OrderItemIn{
			{MenuItemID: "m1", Quantity: 1, Name: "Paneer Tikka", UnitPrice: 100},
		},
		Customer: services.CustomerIn{Name: "Asha", Email: "asha@example.com", Phone: "0812345678"},
	})
	require.NoError(t, err)
	require.Len(t, store.Snapshot().Orders, 1)
	assert.Equal(t, order.OrderID, store.Snapshot().Orders[0].OrderID)

	updated, err := store.UpdateOrderStatus(ctx, order.OrderID, entity.StatusPreparing, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, updated.Status)
	assert.Equal(t, entity.StatusPreparing, store.Snapshot().Orders[0].Status)
}

func TestConcurrentTenantSwitchAndLogout(t *testing.T) {
	store, db := setupStore(t)
	seedTenant(t, db, "r1")
	seedTenant(t, db, "r2")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		id := "r1"
		if i%2 == 1 {
			id = "r2"
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = store.SelectTenant(ctx, id)
				_ = store.Snapshot()
				store.Logout()
			}
		}(id)
	}
	wg.Wait()

	require.NoError(t, store.SelectTenant(ctx, "r1"))
	assert.Equal(t, "r1", store.CurrentTenant())
	assert.NotNil(t, store.Snapshot().Restaurant)
}

func TestLogoutClearsState(t *testing.T) {
	store, db := setupStore(t)
	seedTenant(t, db, "r1")

	require.NoError(t, store.SelectTenant(context.Background(), "r1"))
	store.Logout()

	assert.Empty(t, store.CurrentTenant())
	snap := store.Snapshot()
	assert.Nil(t, snap.Restaurant)
	assert.Empty(t, snap.Menu)
}
