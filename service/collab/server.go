package collab

import (
	"sync"
	"time"

	"CollabSphere/logger"
	"CollabSphere/module/document/store"
	"CollabSphere/service/storage"
	"CollabSphere/tools/safe"
)

// Server is the event router. dispatchMu is the single dispatch context: all
// room-membership mutations and broadcast decisions run under it, so every
// participant of a room observes joins/leaves in the same relative order and
// each connection receives frames in dispatch order. Persistence calls
// (document write, snapshot append/trim) happen outside the lock and must
// never block the broadcast path.
type Server struct {
	nodeID string

	reg      *Registry
	fan      *Fanout
	versions *store.VersionStore
	docs     store.DocumentDB
	disp     *Dispatcher

	dispatchMu sync.Mutex

	keepVersions int64
	presenceTTL  time.Duration
}

func NewServer(nodeID string, reg *Registry, versions *store.VersionStore, docs store.DocumentDB, keepVersions int64, presenceTTL time.Duration) *Server {
	safe.MustNotNil(reg, "registry")
	safe.MustNotNil(versions, "version store")
	safe.MustNotNil(docs, "document accessor")
	return &Server{
		nodeID:       nodeID,
		reg:          reg,
		fan:          NewFanout(),
		versions:     versions,
		docs:         docs,
		disp:         NewDispatcher(),
		keepVersions: keepVersions,
		presenceTTL:  presenceTTL,
	}
}

func (s *Server) NodeID() string               { return s.nodeID }
func (s *Server) Registry() *Registry          { return s.reg }
func (s *Server) Versions() *store.VersionStore { return s.versions }
func (s *Server) Docs() store.DocumentDB       { return s.docs }
func (s *Server) Disp() *Dispatcher            { return s.disp }
func (s *Server) KeepVersions() int64          { return s.keepVersions }
func (s *Server) PresenceTTL() time.Duration   { return s.presenceTTL }

// Serialize runs fn under the dispatch lock.
func (s *Server) Serialize(fn func()) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	fn()
}

// BroadcastRoom fans a payload out to a room, excluding exceptConnID if set.
// Callers hold the dispatch lock (via Serialize) when the broadcast must be
// ordered against membership changes.
func (s *Server) BroadcastRoom(documentID, exceptConnID string, payload []byte) {
	s.fan.Broadcast(s.reg.ClientsOf(documentID, exceptConnID), payload)
}

// SendTo enqueues a payload to a single connection.
func (s *Server) SendTo(c *Client, payload []byte) {
	s.fan.Broadcast([]*Client{c}, payload)
}

func (s *Server) DispatchFrame(f *Frame, c *Client) error {
	return s.disp.Dispatch(&Context{S: s}, f, c)
}

// LeaveRoom removes the client from its current room and notifies the
// remaining members. It is shared by the explicit leave event and the
// transport-level disconnect, which must behave identically.
func (s *Server) LeaveRoom(c *Client) {
	documentID := c.DocumentID
	if documentID == "" {
		return
	}
	s.Serialize(func() {
		remaining, left := s.reg.Leave(documentID, c.ConnID)
		c.DocumentID = ""
		if !left {
			return
		}
		if len(remaining) > 0 {
			s.BroadcastRoom(documentID, c.ConnID, BuildUserLeft(remaining))
		}
	})

	userID := c.UserID
	safe.Go(func() {
		if err := storage.PresenceOffline(userID); err != nil {
			logger.Warnf("[LeaveRoom] presence offline user=%s: %v", userID, err)
		}
	})
	logger.Infof("[LeaveRoom] user=%s conn=%s doc=%s", c.UserID, c.ConnID, documentID)
}

// Disconnect runs the full cleanup for a closed connection: leave the room
// (if any) and release the outbound queue. Always called from the read loop
// defer, so it runs even when the client never sent leave-document.
func (s *Server) Disconnect(c *Client) {
	s.LeaveRoom(c)
	close(c.Send)
}
