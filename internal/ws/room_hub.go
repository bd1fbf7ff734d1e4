package ws

import (
	"encoding/json"
	"sync"
)

// Client is one connected room participant.
type Client struct {
	MemberID uint
	Role     string
	Send     chan []byte

	closeOnce sync.Once
}

// Close shuts the send channel. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// Room has exactly two peers (user and consultant) relaying signaling
// messages to each other.
type Room struct {
	Name  string
	mu    sync.RWMutex
	peers map[uint]*Client
}

func NewRoom(name string) *Room {
	return &Room{Name: name, peers: make(map[uint]*Client)}
}

func (r *Room) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[c.MemberID] = c
}

func (r *Room) Leave(memberID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.peers, memberID)
}

func (r *Room) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers) == 0
}

// SendToOther relays a payload to the peer on the other side of the room.
func (r *Room) SendToOther(senderID uint, payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for memberID, c := range r.peers {
		if memberID != senderID {
			select {
			case c.Send <- data:
			default:
			}
			break
		}
	}
}

// RoomHub tracks live consultation rooms by room name.
type RoomHub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomHub() *RoomHub {
	return &RoomHub{rooms: make(map[string]*Room)}
}

func (h *RoomHub) GetOrCreateRoom(name string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[name]; ok {
		return r
	}
	r := NewRoom(name)
	h.rooms[name] = r
	return r
}

// DropIfEmpty removes the room once the last peer left.
func (h *RoomHub) DropIfEmpty(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[name]; ok && r.Empty() {
		delete(h.rooms, name)
	}
}
