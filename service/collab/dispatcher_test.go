package collab

import (
	"testing"
)

type recordingHandler struct {
	typ  string
	hits int
}

func (h *recordingHandler) Type() string { return h.typ }
func (h *recordingHandler) Handle(_ *Context, _ *Frame, _ *Client) error {
	h.hits++
	return nil
}

func TestDispatchRoutesByType(t *testing.T) {
	d := NewDispatcher()
	join := &recordingHandler{typ: EvtJoinDocument}
	save := &recordingHandler{typ: EvtSaveDocument}
	d.Register(join)
	d.Register(save)

	if err := d.Dispatch(&Context{}, &Frame{Type: EvtSaveDocument}, &Client{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if join.hits != 0 || save.hits != 1 {
		t.Errorf("routing: join=%d save=%d", join.hits, save.hits)
	}
}

func TestDispatchUnknownTypeIsAnError(t *testing.T) {
	d := NewDispatcher()
	if err := d.Dispatch(&Context{}, &Frame{Type: "no-such-event"}, &Client{}); err == nil {
		t.Error("unknown event type must error")
	}
}

func TestGetHandler(t *testing.T) {
	d := NewDispatcher()
	join := &recordingHandler{typ: EvtJoinDocument}
	d.Register(join)

	if h := d.GetHandler(EvtJoinDocument); h != join {
		t.Errorf("GetHandler returned %v", h)
	}
	if h := d.GetHandler("no-such-event"); h != nil {
		t.Errorf("unknown type must return nil, got %v", h)
	}
}
