package handlers

import (
	"context"
	"time"

	"CollabSphere/logger"
	"CollabSphere/module/document/model"
	"CollabSphere/service/collab"
)

const saveTimeout = 5 * time.Second

type SaveHandler struct{ ctx *collab.Context }

func NewSaveHandler(ctx *collab.Context) collab.Handler { return &SaveHandler{ctx: ctx} }
func (h *SaveHandler) Type() string                     { return collab.EvtSaveDocument }

// Handle persists the document, appends an auto snapshot and trims retention,
// then confirms to the whole room, saver included. Persistence runs outside
// the dispatch lock so a slow write never blocks live fan-out. A failure in
// any persistence step is reported to the saver only; the rest of the room
// hears nothing about it.
func (h *SaveHandler) Handle(_ *collab.Context, f *collab.Frame, c *collab.Client) error {
	if c.DocumentID == "" || f.DocumentID != c.DocumentID {
		logger.Debugf("[Save] skip, not in doc=%s conn=%s", f.DocumentID, c.ConnID)
		return nil
	}
	s := h.ctx.S
	documentID := c.DocumentID

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	err := s.Docs().Write(ctx, documentID, f.Content, c.UserID)
	if err == nil {
		_, err = s.Versions().CreateVersion(ctx, documentID, f.Content, c.UserID, model.SnapshotAuto)
	}
	if err == nil {
		_, err = s.Versions().CleanupOldVersions(ctx, documentID, s.KeepVersions())
	}
	if err != nil {
		logger.Errorf("[Save] doc=%s user=%s: %v", documentID, c.UserID, err)
		s.Serialize(func() {
			s.SendTo(c, collab.BuildSaveError("Failed to save document"))
		})
		return nil
	}

	savedAt := time.Now()
	s.Serialize(func() {
		s.BroadcastRoom(documentID, "", collab.BuildDocumentSaved(c.UserName, savedAt))
	})
	logger.Infof("[Save] doc=%s saved by user=%s", documentID, c.UserID)
	return nil
}
