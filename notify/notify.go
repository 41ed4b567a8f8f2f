package notify

import "context"

// Collections ที่ client subscribe ได้
const (
	CollectionOrders = "orders"
	CollectionTables = "tables"
	CollectionMenu   = "menu"
)

func ValidCollection(c string) bool {
	switch c {
	case CollectionOrders, CollectionTables, CollectionMenu:
		return true
	}
	return false
}

// Callback receives a freshly re-queried snapshot of the collection,
// never a diff.
type Callback func(collection string, snapshot any)

// Notifier fans out "collection X of tenant T changed" to subscribers.
// Delivery is at-least-once and best-effort. Re-subscribing with the same
// (tenant, collection, subscriberID) replaces the previous subscription.
type Notifier interface {
	Subscribe(tenantID, collection, subscriberID string, fn Callback) (unsubscribe func())
	Publish(tenantID, collection string)
}

// SnapshotSource re-reads the full scoped collection for a tenant.
type SnapshotSource interface {
	Snapshot(ctx context.Context, tenantID, collection string) (any, error)
}
