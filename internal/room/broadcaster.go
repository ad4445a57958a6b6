package room

// Broadcaster delivers room notifications to connected clients.
// The Manager calls it while holding its lock, so implementations must
// neither block on network writes nor call back into the Manager
// synchronously.
type Broadcaster interface {
	// Subscribe adds a connection to the room's broadcast group.
	Subscribe(roomKey, connID string)
	// Release drops the room's broadcast group entirely.
	Release(roomKey string)
	Broadcast(roomKey string, event string, data interface{})
	Send(connID string, event string, data interface{})
	// Kick closes a connection.
	Kick(connID string)
}
