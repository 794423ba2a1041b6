package service

import (
	"sync"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
)

// IdentityStream is the identity provider's auth-state change feed, modeled
// as an event source with an explicit subscribe/unsubscribe lifecycle. An
// event carrying nil means "signed out". Events are delivered to each
// subscriber in publish order.
type IdentityStream struct {
	mu     sync.Mutex
	subs   map[int]chan *domainauth.Identity
	nextID int
	closed bool
}

// NewIdentityStream creates an empty stream.
func NewIdentityStream() *IdentityStream {
	return &IdentityStream{subs: make(map[int]chan *domainauth.Identity)}
}

// subscriberBuffer bounds how far a slow consumer may lag before publishes
// drop its oldest events. Identity changes are human-interactive; 16 is
// generous.
const subscriberBuffer = 16

// Subscribe registers a consumer and returns its channel plus an unsubscribe
// function. The channel is closed on unsubscribe or stream close.
func (s *IdentityStream) Subscribe() (<-chan *domainauth.Identity, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *domainauth.Identity, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// Publish delivers an identity-change event to all subscribers without
// blocking the publisher. When a subscriber's buffer is full its oldest
// event is dropped; only the latest events matter to consumers.
func (s *IdentityStream) Publish(identity *domainauth.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ch := range s.subs {
		for {
			select {
			case ch <- identity:
			default:
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Close shuts the stream down and closes all subscriber channels.
func (s *IdentityStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
