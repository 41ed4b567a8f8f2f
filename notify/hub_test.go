package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource ตอบ snapshot คงที่ ไม่ต้องพึ่ง DB
type stubSource struct {
	mu   sync.Mutex
	fail bool
}

func (s *stubSource) Snapshot(_ context.Context, tenantID, collection string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("source down")
	}
	return fmt.Sprintf("snapshot:%s/%s", tenantID, collection), nil
}

type delivery struct {
	collection string
	snapshot   any
}

func collect(ch chan delivery) Callback {
	return func(collection string, snapshot any) {
		ch <- delivery{collection: collection, snapshot: snapshot}
	}
}

func waitDelivery(t *testing.T, ch chan delivery) delivery {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return delivery{}
	}
}

func assertNoDelivery(t *testing.T, ch chan delivery) {
	t.Helper()
	select {
	case d := <-ch:
		t.Fatalf("unexpected delivery: %+v", d)
	case <-time.After(200 * time.Millisecond):
	}
}

func startHub(t *testing.T, source SnapshotSource) *Hub {
	t.Helper()
	hub := NewHub(source)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubDeliversFreshSnapshot(t *testing.T) {
	hub := startHub(t, &stubSource{})

	ch := make(chan delivery, 4)
	unsub := hub.Subscribe("r1", CollectionOrders, "s1", collect(ch))
	defer unsub()

	hub.Publish("r1", CollectionOrders)
	d := waitDelivery(t, ch)
	assert.Equal(t, CollectionOrders, d.collection)
	assert.Equal(t, "snapshot:r1/orders", d.snapshot)
}

func TestHubScopesByTenantAndCollection(t *testing.T) {
	hub := startHub(t, &stubSource{})

	r1 := make(chan delivery, 4)
	r2 := make(chan delivery, 4)
	defer hub.Subscribe("r1", CollectionOrders, "s1", collect(r1))()
	defer hub.Subscribe("r2", CollectionOrders, "s1", collect(r2))()

	hub.Publish("r1", CollectionOrders)
	waitDelivery(t, r1)
	assertNoDelivery(t, r2)

	// collection อื่นของ tenant เดียวกันก็ไม่โดน
	hub.Publish("r1", CollectionTables)
	assertNoDelivery(t, r1)
}

func TestHubResubscribeReplaces(t *testing.T) {
	hub := startHub(t, &stubSource{})

	old := make(chan delivery, 4)
	fresh := make(chan delivery, 4)
	hub.Subscribe("r1", CollectionMenu, "same-id", collect(old))
	unsub := hub.Subscribe("r1", CollectionMenu, "same-id", collect(fresh))
	defer unsub()

	hub.Publish("r1", CollectionMenu)
	waitDelivery(t, fresh)
	assertNoDelivery(t, old)
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := startHub(t, &stubSource{})

	ch := make(chan delivery, 4)
	unsub := hub.Subscribe("r1", CollectionOrders, "s1", collect(ch))

	hub.Publish("r1", CollectionOrders)
	waitDelivery(t, ch)

	unsub()
	hub.Publish("r1", CollectionOrders)
	assertNoDelivery(t, ch)
}

func TestHubPanickingSubscriberIsIsolated(t *testing.T) {
	hub := startHub(t, &stubSource{})

	ch := make(chan delivery, 4)
	defer hub.Subscribe("r1", CollectionOrders, "bad", func(string, any) {
		panic("subscriber bug")
	})()
	defer hub.Subscribe("r1", CollectionOrders, "good", collect(ch))()

	hub.Publish("r1", CollectionOrders)
	waitDelivery(t, ch)

	// hub ยังทำงานต่อหลังมี subscriber พัง
	hub.Publish("r1", CollectionOrders)
	waitDelivery(t, ch)
}

func TestHubSnapshotFailureDropsEvent(t *testing.T) {
	src := &stubSource{}
	hub := startHub(t, src)

	ch := make(chan delivery, 4)
	defer hub.Subscribe("r1", CollectionOrders, "s1", collect(ch))()

	src.mu.Lock()
	src.fail = true
	src.mu.Unlock()
	hub.Publish("r1", CollectionOrders)
	assertNoDelivery(t, ch)

	src.mu.Lock()
	src.fail = false
	src.mu.Unlock()
	hub.Publish("r1", CollectionOrders)
	waitDelivery(t, ch)
}

func TestValidCollection(t *testing.T) {
	require.True(t, ValidCollection("orders"))
	require.True(t, ValidCollection("tables"))
	require.True(t, ValidCollection("menu"))
	require.False(t, ValidCollection("users"))
	require.False(t, ValidCollection(""))
}
