package notify

import (
	"testing"
	"time"
)

func TestPollerPublishTriggersImmediateRefresh(t *testing.T) {
	// interval ยาว ๆ เพื่อให้แน่ใจว่า delivery มาจาก kick ไม่ใช่ ticker
	p := NewPoller(&stubSource{}, time.Minute)

	ch := make(chan delivery, 4)
	unsub := p.Subscribe("r1", CollectionOrders, "s1", collect(ch))
	defer unsub()

	p.Publish("r1", CollectionOrders)
	d := waitDelivery(t, ch)
	if d.snapshot != "snapshot:r1/orders" {
		t.Fatalf("unexpected snapshot: %v", d.snapshot)
	}
}

func TestPollerTickerRefreshesWithoutPublish(t *testing.T) {
	p := NewPoller(&stubSource{}, 50*time.Millisecond)

	ch := make(chan delivery, 4)
	defer p.Subscribe("r1", CollectionMenu, "s1", collect(ch))()

	waitDelivery(t, ch)
}

func TestPollerUnsubscribeStopsLoop(t *testing.T) {
	p := NewPoller(&stubSource{}, 50*time.Millisecond)

	ch := make(chan delivery, 16)
	unsub := p.Subscribe("r1", CollectionTables, "s1", collect(ch))
	waitDelivery(t, ch)

	unsub()
	// drain อะไรที่ค้างท่อ แล้วต้องเงียบ
	time.Sleep(100 * time.Millisecond)
	for len(ch) > 0 {
		<-ch
	}
	assertNoDelivery(t, ch)
}

func TestPollerResubscribeReplaces(t *testing.T) {
	p := NewPoller(&stubSource{}, 50*time.Millisecond)

	old := make(chan delivery, 16)
	fresh := make(chan delivery, 16)
	p.Subscribe("r1", CollectionOrders, "same-id", collect(old))
	unsub := p.Subscribe("r1", CollectionOrders, "same-id", collect(fresh))
	defer unsub()

	waitDelivery(t, fresh)
	time.Sleep(100 * time.Millisecond)
	for len(old) > 0 { // loop เก่าอาจยิงทันก่อนโดน stop
		<-old
	}
	assertNoDelivery(t, old)
}
