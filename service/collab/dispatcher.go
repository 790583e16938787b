package collab

import (
	"fmt"

	"CollabSphere/logger"
)

// Context carries the server into event handlers.
type Context struct {
	S *Server
}

// Handler processes one inbound event type.
type Handler interface {
	Type() string
	Handle(ctx *Context, f *Frame, c *Client) error
}

type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

func (d *Dispatcher) Register(h Handler) { d.handlers[h.Type()] = h }

func (d *Dispatcher) Dispatch(ctx *Context, f *Frame, c *Client) error {
	h, ok := d.handlers[f.Type]
	if !ok {
		return fmt.Errorf("no handler for type=%s", f.Type)
	}
	return h.Handle(ctx, f, c)
}

func (d *Dispatcher) GetHandler(t string) Handler {
	h, ok := d.handlers[t]
	if !ok {
		logger.Infof("no handler for type=%s", t)
		return nil
	}
	return h
}
