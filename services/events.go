package services

import "fmt"

// Event is what the realtime bridge pushes to subscribed clients. Every
// state mutation in this package is a normal row write first; events only
// mirror committed rows so a client that misses one can refetch.
type Event struct {
	Type    string `json:"type"` // order_update | order_deleted | notification
	Payload any    `json:"payload"`
}

// EventPublisher is implemented by the websocket hub. A nil publisher
// degrades to database-only writes (clients poll instead).
type EventPublisher interface {
	Publish(topic string, ev Event)
}

// BoardTopic is the subscription key of a staff board.
func BoardTopic(restID uint, role string) string {
	return fmt.Sprintf("board:%d:%s", restID, role)
}

// TableTopic is the subscription key of the customer menu page for one
// table.
func TableTopic(tableID uint) string {
	return fmt.Sprintf("table:%d", tableID)
}
