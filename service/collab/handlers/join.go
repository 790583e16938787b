package handlers

import (
	"CollabSphere/logger"
	"CollabSphere/service/collab"
	"CollabSphere/service/storage"
	"CollabSphere/tools/safe"
)

type JoinHandler struct{ ctx *collab.Context }

func NewJoinHandler(ctx *collab.Context) collab.Handler { return &JoinHandler{ctx: ctx} }
func (h *JoinHandler) Type() string                     { return collab.EvtJoinDocument }

func (h *JoinHandler) Handle(_ *collab.Context, f *collab.Frame, c *collab.Client) error {
	s := h.ctx.S
	if f.DocumentID == "" {
		logger.Infof("[Join] skip, empty documentId conn=%s", c.ConnID)
		return nil
	}

	// Switching rooms on the same connection: leave the old one first so the
	// old room's members see a user-left before anything else.
	if c.DocumentID != "" && c.DocumentID != f.DocumentID {
		s.LeaveRoom(c)
	}

	c.UserName = f.UserName

	s.Serialize(func() {
		participants := s.Registry().Join(f.DocumentID, c.ConnID, f.UserID, f.UserName, c)
		c.DocumentID = f.DocumentID
		// everyone in the room, joiner included, gets the fresh member list
		s.BroadcastRoom(f.DocumentID, "", collab.BuildUserJoined(participants))
	})

	userID, documentID, ttl := c.UserID, f.DocumentID, s.PresenceTTL()
	safe.Go(func() {
		if err := storage.PresenceOnline(userID, documentID, ttl); err != nil {
			logger.Warnf("[Join] presence online user=%s: %v", userID, err)
		}
	})

	logger.Infof("[Join] user=%s name=%s joined doc=%s conn=%s", f.UserID, f.UserName, f.DocumentID, c.ConnID)
	return nil
}
