package handlers

import (
	"CollabSphere/service/collab"
)

type TypingHandler struct{ ctx *collab.Context }

func NewTypingHandler(ctx *collab.Context) collab.Handler { return &TypingHandler{ctx: ctx} }
func (h *TypingHandler) Type() string                     { return collab.EvtTyping }

// Handle broadcasts a typing notice to the rest of the room. The server keeps
// no typing state: expiry of the indicator is the receiver's own timer.
func (h *TypingHandler) Handle(_ *collab.Context, f *collab.Frame, c *collab.Client) error {
	if c.DocumentID == "" || f.DocumentID != c.DocumentID {
		return nil
	}
	s := h.ctx.S
	s.Serialize(func() {
		s.BroadcastRoom(c.DocumentID, c.ConnID, collab.BuildUserTyping(f.UserID, f.UserName))
	})
	return nil
}
