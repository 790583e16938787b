package handlers

import (
	"CollabSphere/service/collab"
)

type CursorHandler struct{ ctx *collab.Context }

func NewCursorHandler(ctx *collab.Context) collab.Handler { return &CursorHandler{ctx: ctx} }
func (h *CursorHandler) Type() string                     { return collab.EvtCursorMove }

func (h *CursorHandler) Handle(_ *collab.Context, f *collab.Frame, c *collab.Client) error {
	if c.DocumentID == "" || f.DocumentID != c.DocumentID {
		return nil
	}
	s := h.ctx.S
	s.Serialize(func() {
		color, ok := s.Registry().UpdateCursor(c.DocumentID, c.ConnID, f.Position)
		if !ok {
			// event raced a leave; silent no-op
			return
		}
		s.BroadcastRoom(c.DocumentID, c.ConnID, collab.BuildCursorMove(f.UserID, f.UserName, f.Position, color))
	})
	return nil
}
