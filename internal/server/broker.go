package server

import (
	"fmt"
	"sync/atomic"
)

// Broker manages SSE client connections and broadcasts reload events.
//
// Concurrency model: a single internal event loop (goroutine) owns the
// client set. Public methods communicate with this loop through channels,
// so no mutexes are required.
type Broker struct {
	subscribeCh   chan chan []byte
	unsubscribeCh chan chan []byte
	publishCh     chan string
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker and starts its event loop.
func NewBroker() *Broker {
	b := &Broker{
		subscribeCh:   make(chan chan []byte),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan string, 64),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})

	broadcast := func(event string) {
		raw := []byte(fmt.Sprintf("event: %s\ndata: {}\n\n", event))
		for ch := range clients {
			select {
			case ch <- raw:
			default:
				// Client buffer full; skip to avoid blocking broker loop.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			clients[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case req := <-b.countReqCh:
			req <- len(clients)
		}
	}
}

// Subscribe registers a new client and returns its message channel.
func (b *Broker) Subscribe() chan []byte {
	if b.closed.Load() {
		ch := make(chan []byte)
		close(ch)
		return ch
	}
	ch := make(chan []byte, 16)
	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client; its channel is closed by the loop.
func (b *Broker) Unsubscribe(ch chan []byte) {
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// NotifyReload broadcasts a reload event to all connected clients.
func (b *Broker) NotifyReload() {
	select {
	case b.publishCh <- "reload":
	case <-b.stopped:
	}
}

// ClientCount reports the number of connected clients, used by tests.
func (b *Broker) ClientCount() int {
	req := make(chan int, 1)
	select {
	case b.countReqCh <- req:
		return <-req
	case <-b.stopped:
		return 0
	}
}

// Close stops the event loop and disconnects all clients.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
		<-b.stopped
	}
}
