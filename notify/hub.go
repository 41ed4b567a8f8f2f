package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Hub คือศูนย์กลางกระจาย change event ภายใน process
// สร้างตอน start, Run(ctx) และหยุดตอน shutdown — ไม่ใช่ global
type Hub struct {
	source  SnapshotSource
	publish chan pubEvent

	mu   sync.Mutex
	subs map[string]map[string]Callback // tenant+collection -> subscriberID -> callback

	queryTimeout time.Duration
}

type pubEvent struct {
	tenantID   string
	collection string
}

func NewHub(source SnapshotSource) *Hub {
	return &Hub{
		source:       source,
		publish:      make(chan pubEvent, 64),
		subs:         make(map[string]map[string]Callback),
		queryTimeout: 5 * time.Second,
	}
}

func topicKey(tenantID, collection string) string {
	return tenantID + "/" + collection
}

// Subscribe ลงทะเบียน callback; subscriberID เดิมจะถูกแทนที่ ไม่ซ้ำซ้อน
func (h *Hub) Subscribe(tenantID, collection, subscriberID string, fn Callback) func() {
	key := topicKey(tenantID, collection)

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[string]Callback)
	}
	h.subs[key][subscriberID] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		if m, ok := h.subs[key]; ok {
			delete(m, subscriberID)
			if len(m) == 0 {
				delete(h.subs, key)
			}
		}
		h.mu.Unlock()
	}
}

// Publish enqueues the event; a full publish queue is logged and dropped
// rather than blocking the mutating request.
func (h *Hub) Publish(tenantID, collection string) {
	select {
	case h.publish <- pubEvent{tenantID: tenantID, collection: collection}:
	default:
		log.Printf("notify: publish queue full, dropping %s/%s", tenantID, collection)
	}
}

// Run คอยฟัง publish event จนกว่า ctx จะโดนยกเลิก
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.publish:
			h.fanOut(ctx, ev)
		}
	}
}

func (h *Hub) fanOut(ctx context.Context, ev pubEvent) {
	key := topicKey(ev.tenantID, ev.collection)

	h.mu.Lock()
	targets := make(map[string]Callback, len(h.subs[key]))
	for id, fn := range h.subs[key] {
		targets[id] = fn
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	qctx, cancel := context.WithTimeout(ctx, h.queryTimeout)
	snapshot, err := h.source.Snapshot(qctx, ev.tenantID, ev.collection)
	cancel()
	if err != nil {
		log.Printf("notify: snapshot %s failed: %v", key, err)
		return
	}

	for id, fn := range targets {
		h.deliver(id, ev.collection, fn, snapshot)
	}
}

// ส่งให้ทีละ subscriber; ตัวที่พังไม่กระทบตัวอื่น (log and drop)
func (h *Hub) deliver(subscriberID, collection string, fn Callback, snapshot any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify: subscriber %s panicked: %v", subscriberID, r)
		}
	}()
	fn(collection, snapshot)
}
