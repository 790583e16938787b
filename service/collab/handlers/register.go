package handlers

import (
	"CollabSphere/service/collab"
)

// RegisterAll wires one handler per inbound event type into the server's
// dispatcher. Called once during boot.
func RegisterAll(s *collab.Server) {
	ctx := &collab.Context{S: s}
	s.Disp().Register(NewJoinHandler(ctx))
	s.Disp().Register(NewLeaveHandler(ctx))
	s.Disp().Register(NewContentHandler(ctx))
	s.Disp().Register(NewTypingHandler(ctx))
	s.Disp().Register(NewCursorHandler(ctx))
	s.Disp().Register(NewSaveHandler(ctx))
}
