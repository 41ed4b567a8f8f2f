package notify

import (
	"context"
	"fmt"

	"github.com/spywithcode/ReStro/repository"
)

// Snapshots re-queries full scoped collections the same way the dashboards
// render them: orders newest first, tables by number, available menu by
// category then name.
type Snapshots struct {
	Orders *repository.OrderRepository
	Tables *repository.TableRepository
	Menu   *repository.MenuRepository
}

func NewSnapshots(orders *repository.OrderRepository, tables *repository.TableRepository, menu *repository.MenuRepository) *Snapshots {
	return &Snapshots{Orders: orders, Tables: tables, Menu: menu}
}

func (s *Snapshots) Snapshot(ctx context.Context, tenantID, collection string) (any, error) {
	switch collection {
	case CollectionOrders:
		return s.Orders.List(ctx, repository.OrderFilter{RestaurantID: tenantID})
	case CollectionTables:
		return s.Tables.List(ctx, repository.TableFilter{RestaurantID: tenantID})
	case CollectionMenu:
		avail := true
		return s.Menu.List(ctx, repository.MenuFilter{RestaurantID: tenantID, IsAvailable: &avail})
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}
