package collab

// Fanout enqueues one payload to many clients. It is called while the server
// holds the dispatch lock, so enqueue order (and therefore delivery order per
// connection) follows dispatch order.
type Fanout struct{}

func NewFanout() *Fanout { return &Fanout{} }

func (f *Fanout) Broadcast(conns []*Client, payload []byte) {
	if len(conns) == 0 || len(payload) == 0 {
		return
	}
	for _, c := range conns {
		select {
		case c.Send <- payload:
		default:
			// Slow client: can be counted/disconnected; here we choose to skip
		}
	}
}
