package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cardapio-digital/domain/ports"
)

type fakeConn struct {
	mu      sync.Mutex
	sent    []Message
	failing bool
	closed  bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.sent = append(f.sent, v.(Message))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.sent...)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHubBroadcastsCatalogChanges(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	good := &fakeConn{}
	bad := &fakeConn{failing: true}
	hub.Register(good)
	hub.Register(bad)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.BroadcastCatalogChanged(&ports.CatalogChangedEvent{Entity: "category", EntityID: "c1", Action: ports.CatalogCreated})

	waitFor(t, func() bool { return len(good.messages()) == 1 })
	if got := good.messages()[0]; got.Type != MessageCatalogChanged {
		t.Fatalf("message type = %s", got.Type)
	}
	waitFor(t, func() bool { return bad.isClosed() && hub.ClientCount() == 1 })

	hub.Unregister(good)
	waitFor(t, func() bool { return good.isClosed() && hub.ClientCount() == 0 })
}

func TestHubAnswersPing(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}

	hub.HandleMessage(conn, []byte(`{"type":"ping"}`))
	hub.HandleMessage(conn, []byte(`not json`))
	hub.HandleMessage(conn, []byte(`{"type":"other"}`))

	msgs := conn.messages()
	if len(msgs) != 1 || msgs[0].Type != MessagePong {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := &fakeConn{}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Stop()
	waitFor(t, conn.isClosed)

	// calls after stop return instead of blocking
	hub.Register(&fakeConn{})
	hub.Unregister(conn)
	hub.Stop()
}

type fakeSubscriber struct {
	handler      ports.CatalogHandler
	unsubscribed bool
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, handler ports.CatalogHandler) error {
	f.handler = handler
	return nil
}

func (f *fakeSubscriber) Unsubscribe() error {
	f.unsubscribed = true
	return nil
}

type recordingHub struct {
	events []*ports.CatalogChangedEvent
}

func (r *recordingHub) BroadcastCatalogChanged(event *ports.CatalogChangedEvent) {
	r.events = append(r.events, event)
}

func TestCatalogRelayForwardsEvents(t *testing.T) {
	sub := &fakeSubscriber{}
	hub := &recordingHub{}
	relay := NewCatalogRelay(sub, hub)

	if err := relay.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := relay.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	sub.handler(&ports.CatalogChangedEvent{Entity: "menu_item", EntityID: "m1"})
	if len(hub.events) != 1 || hub.events[0].EntityID != "m1" {
		t.Fatalf("events = %+v", hub.events)
	}

	if err := relay.Stop(); err != nil || !sub.unsubscribed {
		t.Fatalf("Stop = %v, unsubscribed = %v", err, sub.unsubscribed)
	}
}
