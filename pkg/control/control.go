// Package control defines the one-way message channel used by the request layer to ask the
// engine for work.
package control

import (
	"errors"
	"fmt"

	"github.com/umputun/newswatcher/pkg/domain"
)

// Kind discriminates control messages
type Kind string

// KindRefreshSubscriber asks for a single subscriber refresh
const KindRefreshSubscriber Kind = "REFRESH_SUBSCRIBER"

var (
	// ErrMailboxFull is returned when the engine is not keeping up with requests
	ErrMailboxFull = errors.New("control mailbox is full")
	// ErrUnknownKind is returned for messages of an unsupported kind
	ErrUnknownKind = errors.New("unknown message kind")
)

// Message is a control request. Reply is optional and never serialized, if set the engine
// sends the outcome to it without blocking.
type Message struct {
	Kind       Kind              `json:"kind"`
	Subscriber domain.Subscriber `json:"subscriber"`
	Reply      chan<- error      `json:"-"`
}

// Validate checks the message is something the engine can handle
func (m Message) Validate() error {
	switch m.Kind {
	case KindRefreshSubscriber:
		if m.Subscriber.ID == 0 {
			return errors.New("subscriber id is required")
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}
}

// Respond delivers the outcome to Reply if the sender asked for one
func (m Message) Respond(err error) {
	if m.Reply == nil {
		return
	}
	select {
	case m.Reply <- err:
	default:
	}
}

// RefreshSubscriber makes a refresh request for the subscriber
func RefreshSubscriber(sub domain.Subscriber) Message {
	return Message{Kind: KindRefreshSubscriber, Subscriber: sub}
}

// Mailbox is a bounded, fire-and-forget queue of control messages
type Mailbox struct {
	ch chan Message
}

// NewMailbox makes a mailbox holding up to size pending messages
func NewMailbox(size int) *Mailbox {
	if size <= 0 {
		size = 1
	}
	return &Mailbox{ch: make(chan Message, size)}
}

// Send validates and enqueues the message without waiting for the engine
func (m *Mailbox) Send(msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	select {
	case m.ch <- msg:
		return nil
	default:
		return ErrMailboxFull
	}
}

// Receive returns the channel the engine reads messages from
func (m *Mailbox) Receive() <-chan Message {
	return m.ch
}

// Pending returns the number of queued messages
func (m *Mailbox) Pending() int {
	return len(m.ch)
}
