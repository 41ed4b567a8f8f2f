package ws

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/spywithcode/ReStro/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Feed คือ push implementation ของ change notification layer ฝั่ง HTTP:
// client ต่อ WS ค้างไว้ แล้วรับ snapshot ใหม่ทุกครั้งที่ collection เปลี่ยน
type Feed struct {
	Notifier notify.Notifier
	Source   notify.SnapshotSource
}

func NewFeed(notifier notify.Notifier, source notify.SnapshotSource) *Feed {
	return &Feed{Notifier: notifier, Source: source}
}

type feedMessage struct {
	Collection string `json:"collection"`
	Data       any    `json:"data"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/:restaurantId/:collection
func (f *Feed) HandleWebSocket(c *gin.Context) {
	restaurantID := c.Param("restaurantId")
	collection := c.Param("collection")

	if restaurantID == "" || !notify.ValidCollection(collection) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unknown collection"})
		return
	}

	// --- Upgrade HTTP → WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// WriteJSON มาได้จากทั้ง initial send และ hub fan-out
	var writeMu sync.Mutex
	send := func(collection string, snapshot any) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(feedMessage{Collection: collection, Data: snapshot}); err != nil {
			log.Printf("ws write error: %v", err)
			conn.Close()
		}
	}

	// initial snapshot ก่อน แล้วค่อยรอ change
	snapshot, err := f.Source.Snapshot(c.Request.Context(), restaurantID, collection)
	if err != nil {
		log.Printf("ws initial snapshot error: %v", err)
		conn.Close()
		return
	}
	send(collection, snapshot)

	subscriberID := fmt.Sprintf("ws-%s-%p", c.ClientIP(), conn)
	unsubscribe := f.Notifier.Subscribe(restaurantID, collection, subscriberID, send)

	go f.waitForClose(conn, unsubscribe)
}

// ฟังจนกว่า client จะหลุด → ถอน subscription
func (f *Feed) waitForClose(conn *websocket.Conn, unsubscribe func()) {
	defer func() {
		unsubscribe()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
