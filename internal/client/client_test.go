package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/session"
)

func TestFetchTestDefinition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/test/7", r.URL.Path)
		assert.Equal(t, "Bearer tk", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(dto.TestResponseDTO{
			ID:   7,
			Name: "Personality Test",
			Type: "PERSONALITY",
			Questions: []dto.QuestionDTO{
				{ID: 31, Question: "first", Options: []string{"a", "b"}},
				{ID: 32, Question: "second", Options: []string{"c", "d"}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{Token: "tk"})
	def, err := c.FetchTestDefinition(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, "7", def.ID)
	assert.Equal(t, "PERSONALITY", def.Type)
	require.Len(t, def.Questions, 2)
	assert.Equal(t, "31", def.Questions[0].ID)
	assert.Equal(t, []string{"c", "d"}, def.Questions[1].Options)
}

func TestFetchTestDefinitionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Message: "test not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.FetchTestDefinition(context.Background(), "99")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestNetworkFailureMapsToErrNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, nil)
	_, err := c.FetchTestDefinition(context.Background(), "7")
	assert.ErrorIs(t, err, session.ErrNetwork)
}

func TestSubmitAnswersPayloadAndMapping(t *testing.T) {
	var received dto.SubmitTestDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/test/7/submit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(dto.TestResultDTO{
			ID:          12,
			Result:      "INFJ",
			Description: "advocate",
			TestType:    "PERSONALITY",
			Score: []dto.ScoreEntryDTO{
				{Key: "e", Value: 1},
				{Key: "i", Value: 3},
			},
			Date: time.Now(),
		})
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{Token: "tk"})
	result, err := c.SubmitAnswers(context.Background(), "7", []session.Answer{
		{QuestionID: "31", Answer: 1},
		{QuestionID: "32", Answer: 0},
	})
	require.NoError(t, err)

	require.Len(t, received.Answers, 2)
	assert.Equal(t, uint(31), received.Answers[0].QuestionID)
	assert.Equal(t, 1, *received.Answers[0].Answer)
	assert.Equal(t, uint(32), received.Answers[1].QuestionID)
	assert.Equal(t, 0, *received.Answers[1].Answer)

	assert.Equal(t, "INFJ", result.Label)
	assert.Equal(t, []session.CategoryScore{
		{Key: "e", Value: "1"},
		{Key: "i", Value: "3"},
	}, result.CategoryScores)
}

func TestSubmitAnswersServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Message: "invalid submission"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.SubmitAnswers(context.Background(), "7", []session.Answer{{QuestionID: "31", Answer: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid submission")
	assert.NotErrorIs(t, err, session.ErrNetwork)
}

func TestFetchResultHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/my-results", r.URL.Path)
		json.NewEncoder(w).Encode([]dto.TestResultSummaryDTO{
			{ID: 2, TestName: "Career Test", TestType: "CAREER", Result: "Artistic", Date: time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)},
			{ID: 1, TestName: "Personality Test", TestType: "PERSONALITY", Result: "ENFP", Date: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, &Session{Token: "tk"})
	summaries, err := c.FetchResultHistory(context.Background())
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "2", summaries[0].ID)
	assert.Equal(t, "Artistic", summaries[0].Label)
	assert.Equal(t, "2026-08-30 14:05", summaries[0].Date)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var req dto.LoginDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.c", req.Email)
		json.NewEncoder(w).Encode(dto.LoginResponseDTO{Token: "issued-token"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	require.NoError(t, c.Login(context.Background(), "a@b.c", "secret"))
	assert.Equal(t, "issued-token", c.Token())
}
