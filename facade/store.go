// Package facade is the single entry point a UI layer talks to: it owns the
// current tenant selection, caches the latest known snapshot of the tenant's
// data, and keeps it fresh through the change notification layer.
package facade

import (
	"context"
	"errors"
	"fmt"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/notify"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/services"

	"sync"
)

type Snapshot struct {
	Restaurant *entity.Restaurant
	Menu       []entity.MenuItem
	Tables     []entity.Table
	Orders     []entity.Order
}

type Store struct {
	Restaurants *services.RestaurantService
	Menu        *services.MenuService
	Tables      *services.TableService
	Orders      *services.OrderService
	Auth        *services.AuthService

	notifier  notify.Notifier
	selection SelectionStore

	mu       sync.RWMutex
	tenantID string
	snap     Snapshot

	unsubscribe []func()
}

func NewStore(
	restaurants *services.RestaurantService,
	menu *services.MenuService,
	tables *services.TableService,
	orders *services.OrderService,
	auth *services.AuthService,
	notifier notify.Notifier,
	selection SelectionStore,
) *Store {
	return &Store{
		Restaurants: restaurants,
		Menu:        menu,
		Tables:      tables,
		Orders:      orders,
		Auth:        auth,
		notifier:    notifier,
		selection:   selection,
	}
}

func (s *Store) CurrentTenant() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenantID
}

// Snapshot คืนสำเนาของ cache ปัจจุบัน
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Restore โหลด tenant ที่เคยเลือกไว้ (ถ้ามี)
func (s *Store) Restore(ctx context.Context) error {
	id, err := s.selection.Load()
	if err != nil || id == "" {
		return err
	}
	return s.SelectTenant(ctx, id)
}

// SelectTenant persists the choice and reloads all four collections. A
// collection that fails to load keeps its previously cached data; the
// combined error is returned so the caller can surface it.
func (s *Store) SelectTenant(ctx context.Context, tenantID string) error {
	if err := s.selection.Save(tenantID); err != nil {
		return fmt.Errorf("persist tenant selection: %w", err)
	}

	s.mu.Lock()
	if s.tenantID != tenantID {
		s.snap = Snapshot{} // ร้านใหม่ cache เก่าใช้ไม่ได้
	}
	s.tenantID = tenantID
	s.mu.Unlock()

	s.resubscribe(tenantID)
	return s.Reload(ctx)
}

// Reload re-fetches everything for the current tenant, tolerating partial
// failure.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.RLock()
	tenantID := s.tenantID
	s.mu.RUnlock()
	if tenantID == "" {
		return errors.New("no tenant selected")
	}

	var errs []error

	if rest, err := s.Restaurants.Get(ctx, tenantID); err != nil {
		errs = append(errs, fmt.Errorf("restaurant: %w", err))
	} else {
		s.patch(func(snap *Snapshot) { snap.Restaurant = rest })
	}

	if menu, err := s.Menu.List(ctx, repository.MenuFilter{RestaurantID: tenantID}); err != nil {
		errs = append(errs, fmt.Errorf("menu: %w", err))
	} else {
		s.patch(func(snap *Snapshot) { snap.Menu = menu })
	}

	if tables, err := s.Tables.List(ctx, repository.TableFilter{RestaurantID: tenantID}); err != nil {
		errs = append(errs, fmt.Errorf("tables: %w", err))
	} else {
		s.patch(func(snap *Snapshot) { snap.Tables = tables })
	}

	if orders, err := s.Orders.List(ctx, repository.OrderFilter{RestaurantID: tenantID}); err != nil {
		errs = append(errs, fmt.Errorf("orders: %w", err))
	} else {
		s.patch(func(snap *Snapshot) { snap.Orders = orders })
	}

	return errors.Join(errs...)
}

// subscription เดิมของร้านก่อนหน้าถูกแทนที่ ไม่งอกซ้ำ
func (s *Store) resubscribe(tenantID string) {
	old := s.swapUnsubscribe(nil)
	for _, unsub := range old {
		unsub()
	}

	subs := make([]func(), 0, 3)
	for _, col := range []string{notify.CollectionOrders, notify.CollectionTables, notify.CollectionMenu} {
		subs = append(subs, s.notifier.Subscribe(tenantID, col, "facade-store", s.onChange))
	}
	s.swapUnsubscribe(subs)
}

func (s *Store) swapUnsubscribe(next []func()) []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.unsubscribe
	s.unsubscribe = next
	return old
}

func (s *Store) onChange(collection string, snapshot any) {
	switch collection {
	case notify.CollectionOrders:
		if orders, ok := snapshot.([]entity.Order); ok {
			s.patch(func(snap *Snapshot) { snap.Orders = orders })
		}
	case notify.CollectionTables:
		if tables, ok := snapshot.([]entity.Table); ok {
			s.patch(func(snap *Snapshot) { snap.Tables = tables })
		}
	case notify.CollectionMenu:
		if menu, ok := snapshot.([]entity.MenuItem); ok {
			s.patch(func(snap *Snapshot) { snap.Menu = menu })
		}
	}
}

func (s *Store) patch(f func(*Snapshot)) {
	s.mu.Lock()
	f(&s.snap)
	s.mu.Unlock()
}

// ----- Auth -----

// Login ผูก tenant ปัจจุบันกับร้านของ principal
func (s *Store) Login(ctx context.Context, email, password string) (*entity.User, error) {
	_, user, err := s.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.RestaurantID != "" {
		if err := s.SelectTenant(ctx, user.RestaurantID); err != nil {
			return user, err
		}
	}
	return user, nil
}

func (s *Store) Logout() {
	s.mu.Lock()
	s.tenantID = ""
	s.snap = Snapshot{}
	s.mu.Unlock()

	for _, unsub := range s.swapUnsubscribe(nil) {
		unsub()
	}
}

// ----- Mutators (optimistic-UI: patch local state only on success) -----

func (s *Store) AddMenuItem(ctx context.Context, in *services.MenuItemIn) (*entity.MenuItem, error) {
	item, err := s.Menu.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.patch(func(snap *Snapshot) { snap.Menu = append(snap.Menu, *item) })
	return item, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, in *services.MenuItemIn) (*entity.MenuItem, error) {
	item, err := s.Menu.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	s.patch(func(snap *Snapshot) {
		for i := range snap.Menu {
			if snap.Menu[i].ItemID == item.ItemID && snap.Menu[i].RestaurantID == item.RestaurantID {
				snap.Menu[i] = *item
			}
		}
	})
	return item, nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, restID, itemID string) error {
	if err := s.Menu.Delete(ctx, restID, itemID); err != nil {
		return err
	}
	s.patch(func(snap *Snapshot) {
		kept := snap.Menu[:0]
		for _, m := range snap.Menu {
			if !(m.ItemID == itemID && m.RestaurantID == restID) {
				kept = append(kept, m)
			}
		}
		snap.Menu = kept
	})
	return nil
}

func (s *Store) AddTable(ctx context.Context, in *services.TableIn) (*entity.Table, error) {
	t, err := s.Tables.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.patch(func(snap *Snapshot) { snap.Tables = append(snap.Tables, *t) })
	return t, nil
}

func (s *Store) SetTableStatus(ctx context.Context, restID string, tableNo int, status string) (*entity.Table, error) {
	t, err := s.Tables.UpdateStatus(ctx, restID, tableNo, status)
	if err != nil {
		return nil, err
	}
	s.patch(func(snap *Snapshot) {
		for i := range snap.Tables {
			if snap.Tables[i].TableNo == t.TableNo && snap.Tables[i].RestaurantID == t.RestaurantID {
				snap.Tables[i] = *t
			}
		}
	})
	return t, nil
}

func (s *Store) PlaceOrder(ctx context.Context, req *services.CreateOrderReq) (*entity.Order, error) {
	order, err := s.Orders.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.patch(func(snap *Snapshot) {
		snap.Orders = append([]entity.Order{*order}, snap.Orders...)
	})
	return order, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status, paymentMethod string) (*entity.Order, error) {
	order, err := s.Orders.UpdateStatus(ctx, orderID, status, paymentMethod)
	if err != nil {
		return nil, err
	}
	s.patch(func(snap *Snapshot) {
		for i := range snap.Orders {
			if snap.Orders[i].OrderID == order.OrderID {
				snap.Orders[i] = *order
			}
		}
	})
	return order, nil
}
