package collab

import (
	"encoding/json"
	"fmt"
	"time"

	"CollabSphere/logger"
)

// Inbound event types.
const (
	EvtJoinDocument  = "join-document"
	EvtLeaveDocument = "leave-document"
	EvtContentChange = "content-change" // also outbound
	EvtTyping        = "typing"
	EvtCursorMove    = "cursor-move" // also outbound
	EvtSaveDocument  = "save-document"
)

// Outbound event types.
const (
	EvtUserJoined    = "user-joined"
	EvtUserLeft      = "user-left"
	EvtUserTyping    = "user-typing"
	EvtDocumentSaved = "document-saved"
	EvtSaveError     = "save-error"
)

// CursorPosition is a 2D position reported by the editor client.
type CursorPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is the inbound wire envelope. Fields are populated depending on Type.
type Frame struct {
	Type       string          `json:"type"`
	DocumentID string          `json:"documentId,omitempty"`
	UserID     string          `json:"userId,omitempty"`
	UserName   string          `json:"userName,omitempty"`
	Content    string          `json:"content"`
	Position   *CursorPosition `json:"position,omitempty"`
}

func ParseFrame(raw []byte) (*Frame, error) {
	frame := &Frame{}
	if err := json.Unmarshal(raw, frame); err != nil {
		return nil, fmt.Errorf("unmarshal frame failed: %w", err)
	}
	if frame.Type == "" {
		return nil, fmt.Errorf("frame has no type")
	}
	return frame, nil
}

// ---- outbound frame constructors ----

func BuildUserJoined(participants []Participant) []byte {
	return marshalFrame(struct {
		Type         string        `json:"type"`
		Participants []Participant `json:"participants"`
	}{EvtUserJoined, participants})
}

func BuildUserLeft(participants []Participant) []byte {
	return marshalFrame(struct {
		Type         string        `json:"type"`
		Participants []Participant `json:"participants"`
	}{EvtUserLeft, participants})
}

func BuildContentChange(content, userID string) []byte {
	return marshalFrame(struct {
		Type    string `json:"type"`
		Content string `json:"content"`
		UserID  string `json:"userId"`
	}{EvtContentChange, content, userID})
}

func BuildUserTyping(userID, userName string) []byte {
	return marshalFrame(struct {
		Type     string `json:"type"`
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
	}{EvtUserTyping, userID, userName})
}

func BuildCursorMove(userID, userName string, position *CursorPosition, color string) []byte {
	return marshalFrame(struct {
		Type     string          `json:"type"`
		UserID   string          `json:"userId"`
		UserName string          `json:"userName"`
		Position *CursorPosition `json:"position"`
		Color    string          `json:"color"`
	}{EvtCursorMove, userID, userName, position, color})
}

func BuildDocumentSaved(savedBy string, savedAt time.Time) []byte {
	return marshalFrame(struct {
		Type    string    `json:"type"`
		SavedBy string    `json:"savedBy"`
		SavedAt time.Time `json:"savedAt"`
	}{EvtDocumentSaved, savedBy, savedAt})
}

func BuildSaveError(message string) []byte {
	return marshalFrame(struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{EvtSaveError, message})
}

func marshalFrame(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("[Frames] marshal outbound frame: %v", err)
		return nil
	}
	return data
}
