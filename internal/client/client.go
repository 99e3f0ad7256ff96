// Package client is the HTTP consumer of the EduBot API. It implements the
// collaborator interfaces the session controller depends on, with the auth
// token passed in explicitly rather than read from ambient storage.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/session"
)

// Session carries the authenticated user's bearer token. A zero Session makes
// unauthenticated calls.
type Session struct {
	Token string
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New builds a client for the API at baseURL. The http.Client default has no
// timeout, matching the backend contract of surfacing failures, not hangs;
// callers bound calls with a context when they want one.
func New(baseURL string, sess *Session) *Client {
	if sess == nil {
		sess = &Session{}
	}
	return &Client{baseURL: baseURL, http: &http.Client{}, session: sess}
}

// Token exposes the current bearer token, empty when signed out.
func (c *Client) Token() string { return c.session.Token }

// Login exchanges credentials for a token and stores it on the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp dto.LoginResponseDTO
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginDTO{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	c.session.Token = resp.Token
	return nil
}

// ListTests returns the catalog summaries.
func (c *Client) ListTests(ctx context.Context) ([]dto.TestSummaryDTO, error) {
	var tests []dto.TestSummaryDTO
	if err := c.do(ctx, http.MethodGet, "/api/test/", nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// FetchTestDefinition implements session.Catalog.
func (c *Client) FetchTestDefinition(ctx context.Context, testID string) (*session.TestDefinition, error) {
	var resp dto.TestResponseDTO
	if err := c.do(ctx, http.MethodGet, "/api/test/"+testID, nil, &resp); err != nil {
		return nil, err
	}

	def := &session.TestDefinition{
		ID:          strconv.FormatUint(uint64(resp.ID), 10),
		Name:        resp.Name,
		Type:        resp.Type,
		Description: resp.Description,
		Questions:   make([]session.Question, 0, len(resp.Questions)),
	}
	for _, q := range resp.Questions {
		def.Questions = append(def.Questions, session.Question{
			ID:      strconv.FormatUint(uint64(q.ID), 10),
			Prompt:  q.Question,
			Options: q.Options,
		})
	}
	return def, nil
}

// SubmitAnswers implements session.Scorer.
func (c *Client) SubmitAnswers(ctx context.Context, testID string, answers []session.Answer) (*session.TestResult, error) {
	req := dto.SubmitTestDTO{Answers: make([]dto.AnswerDTO, 0, len(answers))}
	for _, a := range answers {
		questionID, err := strconv.ParseUint(a.QuestionID, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q: %w", a.QuestionID, err)
		}
		answer := a.Answer
		req.Answers = append(req.Answers, dto.AnswerDTO{QuestionID: uint(questionID), Answer: &answer})
	}

	var resp dto.TestResultDTO
	if err := c.do(ctx, http.MethodPost, "/api/test/"+testID+"/submit", req, &resp); err != nil {
		return nil, err
	}
	return toSessionResult(&resp), nil
}

// FetchResultHistory implements session.History.
func (c *Client) FetchResultHistory(ctx context.Context) ([]session.ResultSummary, error) {
	var resp []dto.TestResultSummaryDTO
	if err := c.do(ctx, http.MethodGet, "/api/my-results", nil, &resp); err != nil {
		return nil, err
	}

	summaries := make([]session.ResultSummary, 0, len(resp))
	for _, r := range resp {
		summaries = append(summaries, session.ResultSummary{
			ID:       strconv.FormatUint(uint64(r.ID), 10),
			TestName: r.TestName,
			TestType: r.TestType,
			Label:    r.Result,
			Date:     r.Date.Format("2006-01-02 15:04"),
		})
	}
	return summaries, nil
}

// FetchResultByID implements session.History.
func (c *Client) FetchResultByID(ctx context.Context, resultID string) (*session.TestResult, error) {
	var resp dto.TestResultDTO
	if err := c.do(ctx, http.MethodGet, "/api/test-results/"+resultID, nil, &resp); err != nil {
		return nil, err
	}
	return toSessionResult(&resp), nil
}

func toSessionResult(resp *dto.TestResultDTO) *session.TestResult {
	result := &session.TestResult{
		Label:       resp.Result,
		Description: resp.Description,
		TestType:    resp.TestType,
	}
	for _, score := range resp.Score {
		result.CategoryScores = append(result.CategoryScores, session.CategoryScore{
			Key:   score.Key,
			Value: strconv.Itoa(score.Value),
		})
	}
	for _, major := range resp.RecommendedMajors {
		result.Recommended = append(result.Recommended, session.RecommendedItem{
			Name: major.Name,
			Code: major.Code,
		})
	}
	return result
}

// do runs one JSON request/response cycle. Transport failures map to
// session.ErrNetwork and 404s to session.ErrNotFound so the session layer
// can classify without seeing HTTP.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", session.ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
