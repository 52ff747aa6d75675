package control

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newswatcher/pkg/domain"
)

func TestMessage_JSON(t *testing.T) {
	data := `{"kind":"REFRESH_SUBSCRIBER","subscriber":{"id":12,"email":"a@example.com",
		"newsFilters":[{"name":"tech","keyWords":["apple"],"newsStories":[]}]}}`
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(data), &msg))
	assert.Equal(t, KindRefreshSubscriber, msg.Kind)
	assert.Equal(t, int64(12), msg.Subscriber.ID)
	require.Len(t, msg.Subscriber.Filters, 1)
	assert.Equal(t, []string{"apple"}, msg.Subscriber.Filters[0].KeyWords)
	require.NoError(t, msg.Validate())
}

func TestMessage_Validate(t *testing.T) {
	require.ErrorIs(t, Message{Kind: "REFRESH_STORIES"}.Validate(), ErrUnknownKind)
	require.Error(t, Message{Kind: KindRefreshSubscriber}.Validate())
	require.NoError(t, RefreshSubscriber(domain.Subscriber{ID: 1}).Validate())
}

func TestMessage_Respond(t *testing.T) {
	RefreshSubscriber(domain.Subscriber{ID: 1}).Respond(assert.AnError) // no reply channel, no-op

	reply := make(chan error, 1)
	msg := RefreshSubscriber(domain.Subscriber{ID: 1})
	msg.Reply = reply
	msg.Respond(assert.AnError)
	assert.ErrorIs(t, <-reply, assert.AnError)

	// full reply channel doesn't block
	reply <- nil
	msg.Respond(assert.AnError)
	assert.NoError(t, <-reply)
}

func TestMailbox(t *testing.T) {
	mb := NewMailbox(2)
	require.NoError(t, mb.Send(RefreshSubscriber(domain.Subscriber{ID: 1})))
	require.NoError(t, mb.Send(RefreshSubscriber(domain.Subscriber{ID: 2})))
	assert.Equal(t, 2, mb.Pending())
	require.ErrorIs(t, mb.Send(RefreshSubscriber(domain.Subscriber{ID: 3})), ErrMailboxFull)
	require.ErrorIs(t, mb.Send(Message{Kind: "bad"}), ErrUnknownKind)

	msg := <-mb.Receive()
	assert.Equal(t, int64(1), msg.Subscriber.ID)
	assert.Equal(t, 1, mb.Pending())

	assert.Equal(t, 1, cap(NewMailbox(0).ch))
}
