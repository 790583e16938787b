package handlers

import (
	"CollabSphere/logger"
	"CollabSphere/service/collab"
)

type ContentHandler struct{ ctx *collab.Context }

func NewContentHandler(ctx *collab.Context) collab.Handler { return &ContentHandler{ctx: ctx} }
func (h *ContentHandler) Type() string                     { return collab.EvtContentChange }

// Handle relays a live edit to every other room member. The sender is
// excluded to avoid echo. Nothing is persisted here: content only becomes
// durable through save-document.
func (h *ContentHandler) Handle(_ *collab.Context, f *collab.Frame, c *collab.Client) error {
	if c.DocumentID == "" || f.DocumentID != c.DocumentID {
		logger.Debugf("[Content] skip, not in doc=%s conn=%s", f.DocumentID, c.ConnID)
		return nil
	}
	s := h.ctx.S
	s.Serialize(func() {
		s.BroadcastRoom(c.DocumentID, c.ConnID, collab.BuildContentChange(f.Content, f.UserID))
	})
	return nil
}
