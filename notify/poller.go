package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Poller ทำ contract เดียวกับ Hub แต่ใช้ re-fetch เป็นรอบ ๆ
// ใช้เมื่อไม่มี push channel ให้ใช้ (เช่น ฝั่ง client ที่ต่อ WS ไม่ได้)
type Poller struct {
	source   SnapshotSource
	interval time.Duration

	mu   sync.Mutex
	subs map[string]map[string]*pollSub // tenant+collection -> subscriberID
}

type pollSub struct {
	fn   Callback
	kick chan struct{}
	stop chan struct{}
}

func NewPoller(source SnapshotSource, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		source:   source,
		interval: interval,
		subs:     make(map[string]map[string]*pollSub),
	}
}

func (p *Poller) Subscribe(tenantID, collection, subscriberID string, fn Callback) func() {
	key := topicKey(tenantID, collection)
	sub := &pollSub{
		fn:   fn,
		kick: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}

	p.mu.Lock()
	if p.subs[key] == nil {
		p.subs[key] = make(map[string]*pollSub)
	}
	// re-subscribe แทนที่ของเดิม
	if old, ok := p.subs[key][subscriberID]; ok {
		close(old.stop)
	}
	p.subs[key][subscriberID] = sub
	p.mu.Unlock()

	go p.loop(tenantID, collection, subscriberID, sub)

	return func() {
		p.mu.Lock()
		if m, ok := p.subs[key]; ok && m[subscriberID] == sub {
			delete(m, subscriberID)
			if len(m) == 0 {
				delete(p.subs, key)
			}
			close(sub.stop)
		}
		p.mu.Unlock()
	}
}

// Publish just nudges the pollers for that topic to refresh now.
func (p *Poller) Publish(tenantID, collection string) {
	key := topicKey(tenantID, collection)
	p.mu.Lock()
	for _, sub := range p.subs[key] {
		select {
		case sub.kick <- struct{}{}:
		default:
		}
	}
	p.mu.Unlock()
}

func (p *Poller) loop(tenantID, collection, subscriberID string, sub *pollSub) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-sub.stop:
			return
		case <-ticker.C:
		case <-sub.kick:
		}
		p.refresh(tenantID, collection, subscriberID, sub)
	}
}

func (p *Poller) refresh(tenantID, collection, subscriberID string, sub *pollSub) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify: poll subscriber %s panicked: %v", subscriberID, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snapshot, err := p.source.Snapshot(ctx, tenantID, collection)
	if err != nil {
		log.Printf("notify: poll snapshot %s/%s failed: %v", tenantID, collection, err)
		return
	}
	sub.fn(collection, snapshot)
}
