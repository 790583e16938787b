package collab

import (
	"sync"
)

// Participant is one connection's presence record within a room.
type Participant struct {
	ConnectionID string          `json:"connectionId"`
	UserID       string          `json:"userId"`
	UserName     string          `json:"userName"`
	Color        string          `json:"color"`
	Cursor       *CursorPosition `json:"cursorPosition"`
}

type member struct {
	Participant
	client *Client
}

var defaultPalette = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
	"#8B5CF6", "#EC4899", "#06B6D4", "#84CC16",
}

// Registry is the session registry: documentId -> ordered room members.
// Rooms are created lazily on first join and deleted on last leave; a room
// with zero members never exists. Instances are injectable, there is no
// package-level registry.
type Registry struct {
	mu      sync.Mutex
	palette []string
	rooms   map[string][]*member // documentId -> members in join order
}

func NewRegistry(palette []string) *Registry {
	if len(palette) == 0 {
		palette = defaultPalette
	}
	return &Registry{
		palette: palette,
		rooms:   make(map[string][]*member),
	}
}

// Join inserts the connection into the room, creating the room if absent.
// Color is assigned from the palette by current room size. Re-joining with
// the same connection id updates display fields and keeps the color.
// Returns the full member list after the join.
func (r *Registry) Join(documentID, connID, userID, userName string, c *Client) []Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[documentID]
	for _, m := range room {
		if m.ConnectionID == connID {
			m.UserID = userID
			m.UserName = userName
			m.client = c
			return snapshotLocked(room)
		}
	}

	m := &member{
		Participant: Participant{
			ConnectionID: connID,
			UserID:       userID,
			UserName:     userName,
			Color:        r.palette[len(room)%len(r.palette)],
		},
		client: c,
	}
	room = append(room, m)
	r.rooms[documentID] = room
	return snapshotLocked(room)
}

// Leave removes the connection from the room. The second return is false when
// the connection was not a member (silent no-op). An empty remaining list
// means the room was deleted.
func (r *Registry) Leave(documentID, connID string) ([]Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[documentID]
	if !ok {
		return nil, false
	}
	idx := -1
	for i, m := range room {
		if m.ConnectionID == connID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	room = append(room[:idx], room[idx+1:]...)
	if len(room) == 0 {
		delete(r.rooms, documentID)
		return nil, true
	}
	r.rooms[documentID] = room
	return snapshotLocked(room), true
}

// UpdateCursor mutates the member's cursor position in place and returns its
// color for the outbound broadcast. No-op when the connection is not a
// current member (e.g. the event raced a leave).
func (r *Registry) UpdateCursor(documentID, connID string, position *CursorPosition) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.rooms[documentID] {
		if m.ConnectionID == connID {
			m.Cursor = position
			return m.Color, true
		}
	}
	return "", false
}

// MembersOf returns a snapshot of the room membership, join order preserved.
func (r *Registry) MembersOf(documentID string) []Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshotLocked(r.rooms[documentID])
}

// ClientsOf returns the clients of a room, excluding exceptConnID when set.
func (r *Registry) ClientsOf(documentID, exceptConnID string) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[documentID]
	out := make([]*Client, 0, len(room))
	for _, m := range room {
		if exceptConnID != "" && m.ConnectionID == exceptConnID {
			continue
		}
		if m.client != nil {
			out = append(out, m.client)
		}
	}
	return out
}

// RoomCount reports the number of live rooms.
func (r *Registry) RoomCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func snapshotLocked(room []*member) []Participant {
	out := make([]Participant, 0, len(room))
	for _, m := range room {
		out = append(out, m.Participant)
	}
	return out
}
