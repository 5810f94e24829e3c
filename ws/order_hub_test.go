package ws

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"qrmenu/entity"
	"qrmenu/repository"
	"qrmenu/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var hubTestSeq atomic.Int64

func newHubFixture(t *testing.T) (*OrderHub, *entity.Table, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:hub_test_%d?mode=memory&cache=shared", hubTestSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Restaurant{}, &entity.Table{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	table := &entity.Table{Number: 1, QRCodeToken: uuid.NewString(), IsActive: true, RestaurantID: 1}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	hub := NewOrderHub(repository.NewTableRepository(db))
	go hub.Run()

	r := gin.New()
	r.GET("/ws/table/:token", hub.HandleTable)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, table, srv
}

func TestTableFeedReceivesPublishedEvents(t *testing.T) {
	hub, table, srv := newHubFixture(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/table/" + table.QRCodeToken
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// registration races the publish; give the hub a beat
	time.Sleep(100 * time.Millisecond)

	hub.Publish(services.TableTopic(table.ID), services.Event{
		Type:    "order_update",
		Payload: map[string]any{"orderId": 42},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev services.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != "order_update" {
		t.Errorf("event type = %q, want order_update", ev.Type)
	}
}

func TestTableFeedIsTopicScoped(t *testing.T) {
	hub, table, srv := newHubFixture(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/table/" + table.QRCodeToken
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	time.Sleep(100 * time.Millisecond)

	// a different table's event must not arrive here
	hub.Publish(services.TableTopic(table.ID+1), services.Event{Type: "order_update"})

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if err := conn.ReadJSON(&services.Event{}); err == nil {
		t.Fatal("received an event for another table's topic")
	}
}

func TestUnknownTokenRejected(t *testing.T) {
	_, _, srv := newHubFixture(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/table/no-such-token"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial succeeded for unknown token")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Errorf("expected 404 handshake rejection, got %+v", resp)
	}
}
