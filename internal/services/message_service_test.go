package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/Rohan-debug788/SkillSwap/internal/repositories/memstore"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_Send(t *testing.T) {
	store := memstore.New()
	svc := NewMessageService(store, 10)
	ctx := context.Background()

	msg, err := svc.Send(ctx, "alice", "bob", "  <i>hello</i> there, bob  ")
	require.NoError(t, err)
	assert.Equal(t, "hello ther", msg.Content)
	assert.False(t, msg.Read)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())

	stored, err := store.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.SenderID)
	assert.Equal(t, "bob", stored.ReceiverID)

	tests := []struct {
		name     string
		receiver string
		content  string
	}{
		{name: "Missing receiver", receiver: "", content: "hi"},
		{name: "Blank content", receiver: "bob", content: "   "},
		{name: "Markup only", receiver: "bob", content: "<script>x</script>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(ctx, "alice", tt.receiver, tt.content)
			assert.True(t, errors.Is(err, errors.ErrCodeValidation))
		})
	}
}

func TestMessageService_SendToSelf(t *testing.T) {
	store := memstore.New()
	svc := NewMessageService(store, 0)
	ctx := context.Background()

	msg, err := svc.Send(ctx, "alice", "alice", "note to self")
	require.NoError(t, err)

	history, err := svc.History(ctx, "alice", "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, msg.ID, history[0].ID)
}

func TestMessageService_SendStoreFailure(t *testing.T) {
	store := memstore.New()
	svc := NewMessageService(store, 0)
	store.FailOn("CreateMessage", stderrors.New("db down"))

	_, err := svc.Send(context.Background(), "alice", "bob", "hi")
	assert.True(t, errors.Is(err, errors.ErrCodeTransientStore))
}

func TestMessageService_MarkRead(t *testing.T) {
	store := memstore.New()
	svc := NewMessageService(store, 0)
	ctx := context.Background()

	msg, err := svc.Send(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, msg.ID, "mallory")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFoundOrUnauthorized))

	_, err = svc.MarkRead(ctx, "missing", "bob")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFoundOrUnauthorized))

	read, err := svc.MarkRead(ctx, msg.ID, "bob")
	require.NoError(t, err)
	assert.True(t, read.Read)
	assert.Equal(t, "alice", read.SenderID)

	stored, err := store.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)

	// the sender may mark their own message too
	_, err = svc.MarkRead(ctx, msg.ID, "alice")
	assert.NoError(t, err)
}

func TestMessageService_HistoryAndConversationRead(t *testing.T) {
	store := memstore.New()
	svc := NewMessageService(store, 0)
	ctx := context.Background()

	empty, err := svc.History(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var sent []string
	for i, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}, {"alice", "bob"}, {"alice", "carol"}} {
		msg, err := svc.Send(ctx, pair[0], pair[1], strings.Repeat("x", i+1))
		require.NoError(t, err)
		sent = append(sent, msg.ID)
	}

	history, err := svc.History(ctx, "bob", "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{sent[0], sent[1], sent[2]}, []string{history[0].ID, history[1].ID, history[2].ID})

	ids, err := svc.MarkConversationRead(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{sent[0], sent[2]}, ids)

	again, err := svc.MarkConversationRead(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Empty(t, again)

	_, err = svc.MarkConversationRead(ctx, "bob", "")
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}
