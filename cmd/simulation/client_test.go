package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-pitch-evaluator-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_PostDecodesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analyzer", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"verdict":"좋습니다"}`))
	}))
	defer srv.Close()

	var res dto.AnalyzerResponse
	err := newAPIClient(srv.URL+"/api").post(context.Background(), "/analyzer", dto.AnalyzerRequest{UserIdea: "x"}, &res)
	require.NoError(t, err)
	assert.Equal(t, "좋습니다", res.Verdict)
}

func TestAPIClient_ErrorKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"userName is required"}`))
	}))
	defer srv.Close()

	err := newAPIClient(srv.URL).get(context.Background(), "/leaderboard", nil)

	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, err.Error(), "userName is required")
}
