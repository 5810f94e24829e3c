package ws

import (
	"log"
	"net/http"
	"sync"

	"qrmenu/entity"
	"qrmenu/repository"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderHub is the realtime subscription bridge: clients subscribe to a
// topic (a staff board or one table's feed) and receive every committed
// row change the services publish. Missing an event is recoverable; the
// boards refetch over plain HTTP.
type OrderHub struct {
	clients    map[string]map[*websocket.Conn]bool // topic -> set of clients
	broadcast  chan outbound
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	tables     *repository.TableRepository
}

type subscription struct {
	Conn  *websocket.Conn
	Topic string
}

type outbound struct {
	Topic string
	Event services.Event
}

func NewOrderHub(tables *repository.TableRepository) *OrderHub {
	return &OrderHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan outbound, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		tables:     tables,
	}
}

// Publish implements services.EventPublisher.
func (h *OrderHub) Publish(topic string, ev services.Event) {
	h.broadcast <- outbound{Topic: topic, Event: ev}
}

func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.Topic] == nil {
				h.clients[sub.Topic] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.Topic][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.Topic][sub.Conn]; ok {
				delete(h.clients[sub.Topic], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.Topic] {
				if err := conn.WriteJSON(msg.Event); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[msg.Topic], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleBoard subscribes a staff client to its board feed.
// WS route: /ws/board?role=kitchen|waiter (JWT via ?token=).
func (h *OrderHub) HandleBoard(c *gin.Context) {
	restID := utils.CurrentRestaurantID(c)
	role := c.Query("role")
	if role != entity.TargetKitchen && role != entity.TargetWaiter {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "role must be kitchen or waiter"})
		return
	}
	// owners may watch either board; kitchen/waiter only their own
	if r := utils.CurrentRole(c); r != "owner" && r != role {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	sub := subscription{Conn: conn, Topic: services.BoardTopic(restID, role)}
	h.register <- sub
	go h.drain(sub)
}

// HandleTable subscribes a customer's menu page to its table feed.
// WS route: /ws/table/:token. No auth, the QR token is the credential.
func (h *OrderHub) HandleTable(c *gin.Context) {
	table, err := h.tables.GetByToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "table not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	sub := subscription{Conn: conn, Topic: services.TableTopic(table.ID)}
	h.register <- sub
	go h.drain(sub)
}

// drain discards inbound frames until the peer goes away; clients only
// listen on these sockets.
func (h *OrderHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
