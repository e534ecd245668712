package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/pkg/conversation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatRun(t *testing.T, h http.HandlerFunc) *chatRun {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &chatRun{
		client:   newAPIClient(srv.URL),
		userName: "alice",
		session:  conversation.NewSessionState(),
	}
}

func TestChatTurnDropsUnansweredMessage(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"bad request": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"messages are required"}`))
		},
		"no analysis": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"hello"}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			run := newChatRun(t, h)

			err := run.turn(context.Background(), "an idea")

			assert.Error(t, err)
			assert.Empty(t, run.session.Messages)
		})
	}
}

func TestChatTurnKeepsApology(t *testing.T) {
	run := newChatRun(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"잠시 후 다시 시도해 주세요."}`))
	})

	require.NoError(t, run.turn(context.Background(), "an idea"))

	require.Len(t, run.session.Messages, 2)
	assert.Equal(t, entity.MessageRoleUser, run.session.Messages[0].Role)
	assert.Equal(t, "잠시 후 다시 시도해 주세요.", run.session.Messages[1].Content)
}
