// Package sse pushes pet changes to GET /events subscribers as a
// text/event-stream. Each mutation produces a pet.<kind> frame carrying the
// pet id. Bursts are summarised by at most one pets.changed frame per
// throttle interval, which is what list views listen to before reloading.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Pet change kinds, matching the index change kinds.
const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

const (
	changedEvent = "pets.changed"
	clientBuffer = 64
	// retryMillis is the reconnect delay suggested to clients.
	retryMillis = 3000
	heartbeat   = 15 * time.Second
)

type change struct {
	kind string
	id   string
}

// Broker fans pet changes out to subscribers. Its loop goroutine owns the
// subscriber set, the frame counter and the pets.changed throttle.
type Broker struct {
	throttle time.Duration

	join    chan chan []byte
	leave   chan chan []byte
	changes chan change
	count   chan chan int

	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// NewBroker starts a broker that sends pets.changed at most once per
// throttle. A non-positive throttle means two seconds.
func NewBroker(throttle time.Duration) *Broker {
	if throttle <= 0 {
		throttle = 2 * time.Second
	}
	b := &Broker{
		throttle: throttle,
		join:     make(chan chan []byte),
		leave:    make(chan chan []byte),
		changes:  make(chan change, 256),
		count:    make(chan chan int),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go b.loop()
	return b
}

// frame renders one event. Frames are numbered so a client can tell whether
// it missed any.
func frame(seq uint64, event string, data any) []byte {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}
	return []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", seq, event, payload))
}

func (b *Broker) loop() {
	defer close(b.exited)

	subs := make(map[chan []byte]struct{})
	var (
		seq         uint64
		lastChanged time.Time
	)
	send := func(event string, data any) {
		seq++
		msg := frame(seq, event, data)
		for ch := range subs {
			select {
			case ch <- msg:
			default:
				// A subscriber that stopped reading misses frames.
			}
		}
	}

	for {
		select {
		case <-b.done:
			for ch := range subs {
				close(ch)
			}
			return

		case ch := <-b.join:
			subs[ch] = struct{}{}

		case ch := <-b.leave:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case c := <-b.changes:
			send("pet."+c.kind, map[string]string{"id": c.id})
			if now := time.Now(); now.Sub(lastChanged) >= b.throttle {
				lastChanged = now
				send(changedEvent, map[string]string{})
			}

		case reply := <-b.count:
			reply <- len(subs)
		}
	}
}

// Close stops the loop and closes every subscriber channel, which ends
// their streams. It is safe to call more than once.
func (b *Broker) Close() {
	b.once.Do(func() { close(b.done) })
	<-b.exited
}

// Subscribe registers a subscriber. The channel is closed by Unsubscribe or
// Close; it comes back already closed once the broker has stopped.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	select {
	case b.join <- ch:
	case <-b.exited:
		close(ch)
	}
	return ch
}

// Unsubscribe removes ch and closes it.
func (b *Broker) Unsubscribe(ch chan []byte) {
	select {
	case b.leave <- ch:
	case <-b.exited:
	}
}

// ClientCount reports the number of subscribers.
func (b *Broker) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case b.count <- reply:
	case <-b.exited:
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-b.exited:
		return 0
	}
}

// PublishPetEvent queues a pet.<kind> frame for id. Kinds other than
// created, updated and deleted are dropped. It has the shape of
// petservice.Notifier.
func (b *Broker) PublishPetEvent(kind, id string) {
	switch kind {
	case KindCreated, KindUpdated, KindDeleted:
	default:
		return
	}
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.changes <- change{kind: kind, id: id}:
	case <-b.exited:
	}
}

// ServeHTTP streams frames to one client until it disconnects or the broker
// closes. Idle streams get a comment line every heartbeat so proxies keep
// them open.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "retry: %d\n\n", retryMillis)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	tick := time.NewTicker(heartbeat)
	defer tick.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-tick.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
