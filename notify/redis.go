package notify

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisChannel   = "restro:changes"
	redisOpTimeout = 3 * time.Second
)

// RedisBridge ต่อ Notifier ภายใน process เข้ากับ Redis pub/sub
// เพื่อให้หลาย instance เห็น change เดียวกัน Subscribe ยังเป็นของ local
// ส่วน Publish วิ่งผ่าน Redis แล้ววนกลับเข้า local ทุก instance
type RedisBridge struct {
	local Notifier
	rdb   *redis.Client
}

func NewRedisBridge(local Notifier, rdb *redis.Client) *RedisBridge {
	return &RedisBridge{local: local, rdb: rdb}
}

func (b *RedisBridge) Subscribe(tenantID, collection, subscriberID string, fn Callback) func() {
	return b.local.Subscribe(tenantID, collection, subscriberID, fn)
}

func (b *RedisBridge) Publish(tenantID, collection string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	payload := tenantID + "|" + collection
	if err := b.rdb.Publish(ctx, redisChannel, payload).Err(); err != nil {
		// Redis down must not lose local delivery.
		log.Printf("notify: redis publish failed, delivering locally: %v", err)
		b.local.Publish(tenantID, collection)
	}
}

// Run รับ event จาก Redis (รวมของตัวเอง) แล้วส่งเข้า local notifier
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, redisChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			tenantID, collection, found := strings.Cut(msg.Payload, "|")
			if !found || !ValidCollection(collection) {
				log.Printf("notify: unexpected redis payload %q", msg.Payload)
				continue
			}
			b.local.Publish(tenantID, collection)
		}
	}
}
