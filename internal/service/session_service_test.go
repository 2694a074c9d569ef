package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService() (ISessionService, *fakeStore) {
	factory, store := newFakeFactory()
	return NewSessionService(factory), store
}

func mustCreateSession(t *testing.T, svc ISessionService, userId, name string) *dto.SessionResponse {
	t.Helper()
	session, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		UserId: userId,
		Name:   name,
	})
	require.NoError(t, err)
	return session
}

func TestCreateSession(t *testing.T) {
	svc, _ := newSessionService()

	session := mustCreateSession(t, svc, "user-1", "trip planning")
	assert.NotEqual(t, uuid.Nil, session.Id)
	assert.Equal(t, "user-1", session.UserId)
	assert.Equal(t, "trip planning", session.Name)
	assert.False(t, session.Favorite)
	assert.Equal(t, session.CreatedAt, session.UpdatedAt)
}

func TestCreateSessionValidation(t *testing.T) {
	svc, _ := newSessionService()

	_, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{UserId: "  ", Name: "x"})
	assert.True(t, apperror.IsInvalid(err))

	_, err = svc.CreateSession(context.Background(), &dto.CreateSessionRequest{UserId: "user-1", Name: ""})
	assert.True(t, apperror.IsInvalid(err))
}

func TestGetSessionByIdNotFound(t *testing.T) {
	svc, _ := newSessionService()

	_, err := svc.GetSessionById(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetSessionsByUserId(t *testing.T) {
	svc, _ := newSessionService()

	mustCreateSession(t, svc, "user-1", "first")
	mustCreateSession(t, svc, "user-1", "second")
	mustCreateSession(t, svc, "user-2", "other")

	sessions, err := svc.GetSessionsByUserId(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	sessions, err = svc.GetSessionsByUserId(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = svc.GetSessionsByUserId(context.Background(), "")
	assert.True(t, apperror.IsInvalid(err))
}

func TestRenameSession(t *testing.T) {
	svc, _ := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "old name")

	time.Sleep(time.Millisecond)
	renamed, err := svc.RenameSession(context.Background(), session.Id, "new name")
	require.NoError(t, err)
	assert.Equal(t, "new name", renamed.Name)
	assert.True(t, renamed.UpdatedAt.After(session.UpdatedAt))

	_, err = svc.RenameSession(context.Background(), session.Id, "   ")
	assert.True(t, apperror.IsInvalid(err))

	_, err = svc.RenameSession(context.Background(), uuid.New(), "anything")
	assert.True(t, apperror.IsNotFound(err))
}

func TestMarkFavorite(t *testing.T) {
	svc, _ := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "sess")

	marked, err := svc.MarkFavorite(context.Background(), session.Id, true)
	require.NoError(t, err)
	assert.True(t, marked.Favorite)

	unmarked, err := svc.MarkFavorite(context.Background(), session.Id, false)
	require.NoError(t, err)
	assert.False(t, unmarked.Favorite)

	_, err = svc.MarkFavorite(context.Background(), uuid.New(), true)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteSessionCascades(t *testing.T) {
	svc, store := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "sess")
	other := mustCreateSession(t, svc, "user-1", "other")

	for i := 0; i < 3; i++ {
		_, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
			Sender:  "user",
			Content: fmt.Sprintf("msg %d", i),
		})
		require.NoError(t, err)
	}
	_, err := svc.AddMessage(context.Background(), other.Id, &dto.AddMessageRequest{
		Sender:  "user",
		Content: "keep me",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(context.Background(), session.Id))

	_, err = svc.GetMessages(context.Background(), session.Id, 0, 20)
	assert.True(t, apperror.IsNotFound(err))

	for _, message := range store.messages {
		assert.NotEqual(t, session.Id, message.ChatSessionId)
	}

	kept, err := svc.GetMessages(context.Background(), other.Id, 0, 20)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	assert.True(t, apperror.IsNotFound(svc.DeleteSession(context.Background(), session.Id)))
}

func TestAddMessage(t *testing.T) {
	svc, _ := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "sess")

	message, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
		Sender:  "user",
		Content: "hello",
		Context: "retrieved text",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, message.Id)
	assert.Equal(t, session.Id, message.ChatSessionId)
	assert.Equal(t, "retrieved text", message.Context)
	assert.False(t, message.CreatedAt.IsZero())

	// arbitrary sender labels are accepted
	_, err = svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
		Sender:  "moderator",
		Content: "flagged",
	})
	require.NoError(t, err)

	// a message never bumps the session's UpdatedAt
	fetched, err := svc.GetSessionById(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, session.UpdatedAt, fetched.UpdatedAt)
}

func TestAddMessageValidation(t *testing.T) {
	svc, _ := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "sess")

	_, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{Sender: "", Content: "x"})
	assert.True(t, apperror.IsInvalid(err))

	_, err = svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{Sender: "user", Content: "  "})
	assert.True(t, apperror.IsInvalid(err))

	_, err = svc.AddMessage(context.Background(), uuid.New(), &dto.AddMessageRequest{Sender: "user", Content: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetMessagesBoundsRejectedWithoutQuery(t *testing.T) {
	svc, store := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "sess")

	before := store.sessionQueries + store.messageQueries
	for _, tc := range []struct {
		skip, limit int
	}{
		{0, 0},
		{0, 101},
		{-1, 10},
	} {
		_, err := svc.GetMessages(context.Background(), session.Id, tc.skip, tc.limit)
		assert.True(t, apperror.IsInvalid(err), "skip=%d limit=%d", tc.skip, tc.limit)
	}
	assert.Equal(t, before, store.sessionQueries+store.messageQueries)
}

func TestGetMessagesPageFloor(t *testing.T) {
	svc, _ := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "sess")

	for i := 0; i < 25; i++ {
		_, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
			Sender:  "user",
			Content: fmt.Sprintf("msg %02d", i),
		})
		require.NoError(t, err)
	}

	pageZero, err := svc.GetMessages(context.Background(), session.Id, 0, 10)
	require.NoError(t, err)
	require.Len(t, pageZero, 10)
	assert.Equal(t, "msg 00", pageZero[0].Content)

	// any skip inside the first page resolves to the first page
	floored, err := svc.GetMessages(context.Background(), session.Id, 3, 10)
	require.NoError(t, err)
	require.Len(t, floored, 10)
	assert.Equal(t, pageZero, floored)

	pageTwo, err := svc.GetMessages(context.Background(), session.Id, 20, 10)
	require.NoError(t, err)
	require.Len(t, pageTwo, 5)
	assert.Equal(t, "msg 20", pageTwo[0].Content)

	empty, err := svc.GetMessages(context.Background(), session.Id, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAddMessageConcurrent(t *testing.T) {
	svc, _ := newSessionService()
	session := mustCreateSession(t, svc, "user-1", "sess")

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddMessage(context.Background(), session.Id, &dto.AddMessageRequest{
				Sender:  "user",
				Content: fmt.Sprintf("msg %d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	messages, err := svc.GetMessages(context.Background(), session.Id, 0, 100)
	require.NoError(t, err)
	require.Len(t, messages, n)

	seen := make(map[uuid.UUID]bool, n)
	for _, message := range messages {
		assert.False(t, seen[message.Id], "duplicate message id %s", message.Id)
		seen[message.Id] = true
	}
}
