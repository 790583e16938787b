package handlers

import (
	"CollabSphere/logger"
	"CollabSphere/service/collab"
)

type LeaveHandler struct{ ctx *collab.Context }

func NewLeaveHandler(ctx *collab.Context) collab.Handler { return &LeaveHandler{ctx: ctx} }
func (h *LeaveHandler) Type() string                     { return collab.EvtLeaveDocument }

func (h *LeaveHandler) Handle(_ *collab.Context, f *collab.Frame, c *collab.Client) error {
	if c.DocumentID == "" || (f.DocumentID != "" && f.DocumentID != c.DocumentID) {
		logger.Debugf("[Leave] skip, not in doc=%s conn=%s", f.DocumentID, c.ConnID)
		return nil
	}
	h.ctx.S.LeaveRoom(c)
	return nil
}
