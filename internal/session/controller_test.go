package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeQuestionTest() *TestDefinition {
	return &TestDefinition{
		ID:   "7",
		Name: "Personality Test",
		Type: "PERSONALITY",
		Questions: []Question{
			{ID: "31", Prompt: "first", Options: []string{"a", "b"}},
			{ID: "32", Prompt: "second", Options: []string{"a", "b"}},
			{ID: "33", Prompt: "third", Options: []string{"a", "b", "c"}},
		},
	}
}

type fakeCatalog struct {
	test *TestDefinition
	err  error
}

func (f *fakeCatalog) FetchTestDefinition(ctx context.Context, testID string) (*TestDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.test, nil
}

type fakeScorer struct {
	payloads [][]Answer
	result   *TestResult
	errs     []error
}

func (f *fakeScorer) SubmitAnswers(ctx context.Context, testID string, answers []Answer) (*TestResult, error) {
	copied := make([]Answer, len(answers))
	copy(copied, answers)
	f.payloads = append(f.payloads, copied)

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.result, nil
}

func newLoadedController(t *testing.T, scorer *fakeScorer) *Controller {
	t.Helper()
	ctrl := NewController(&fakeCatalog{test: threeQuestionTest()}, scorer)
	require.NoError(t, ctrl.LoadTest(context.Background(), "7"))
	require.Equal(t, StateInProgress, ctrl.State())
	return ctrl
}

func TestLoadTestInitializesAnswers(t *testing.T) {
	ctrl := newLoadedController(t, &fakeScorer{})

	assert.Equal(t, 0, ctrl.CurrentIndex())
	assert.Equal(t, Unanswered, ctrl.Selected())
	answered, total := ctrl.Progress()
	assert.Equal(t, 0, answered)
	assert.Equal(t, 3, total)
}

func TestLoadTestEmptyIDIsNoOp(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("should not be called")}
	ctrl := NewController(catalog, &fakeScorer{})

	require.NoError(t, ctrl.LoadTest(context.Background(), ""))
	assert.Equal(t, StateIdle, ctrl.State())
	assert.Nil(t, ctrl.Test())
}

func TestLoadTestFailure(t *testing.T) {
	fetchErr := errors.New("connection refused")
	ctrl := NewController(&fakeCatalog{err: fetchErr}, &fakeScorer{})

	err := ctrl.LoadTest(context.Background(), "7")
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, StateLoadFailed, ctrl.State())
	assert.ErrorIs(t, ctrl.Err(), fetchErr)
}

func TestLoadTestRetriesAfterFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("timeout")}
	ctrl := NewController(catalog, &fakeScorer{})

	require.Error(t, ctrl.LoadTest(context.Background(), "7"))

	catalog.err = nil
	catalog.test = threeQuestionTest()
	require.NoError(t, ctrl.LoadTest(context.Background(), "7"))
	assert.Equal(t, StateInProgress, ctrl.State())
	assert.NoError(t, ctrl.Err())
}

func TestAdvanceWithoutSelectionRejected(t *testing.T) {
	ctrl := newLoadedController(t, &fakeScorer{})

	// Repeated attempts without a selection are all rejected identically.
	for i := 0; i < 2; i++ {
		err := ctrl.Advance(context.Background())
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, 0, ctrl.CurrentIndex())
		assert.Equal(t, StateInProgress, ctrl.State())
	}
}

func TestSelectOptionLastWriteWins(t *testing.T) {
	ctrl := newLoadedController(t, &fakeScorer{})

	require.NoError(t, ctrl.SelectOption(0))
	require.NoError(t, ctrl.SelectOption(1))
	assert.Equal(t, 1, ctrl.Selected())
}

func TestSelectOptionOutOfRange(t *testing.T) {
	ctrl := newLoadedController(t, &fakeScorer{})

	var vErr *ValidationError
	require.ErrorAs(t, ctrl.SelectOption(2), &vErr)
	require.ErrorAs(t, ctrl.SelectOption(-1), &vErr)
	assert.Equal(t, Unanswered, ctrl.Selected())
}

func TestFullSessionSubmitsOrderedPayload(t *testing.T) {
	scorer := &fakeScorer{result: &TestResult{Label: "ENFP", Description: "campaigner"}}
	ctrl := newLoadedController(t, scorer)
	ctx := context.Background()

	for _, choice := range []int{1, 0, 1} {
		require.NoError(t, ctrl.SelectOption(choice))
		require.NoError(t, ctrl.Advance(ctx))
	}

	assert.Equal(t, StateCompleted, ctrl.State())
	require.NotNil(t, ctrl.Result())
	assert.Equal(t, "ENFP", ctrl.Result().Label)

	require.Len(t, scorer.payloads, 1)
	assert.Equal(t, []Answer{
		{QuestionID: "31", Answer: 1},
		{QuestionID: "32", Answer: 0},
		{QuestionID: "33", Answer: 1},
	}, scorer.payloads[0])
}

func TestRetrySubmissionSendsIdenticalPayload(t *testing.T) {
	scorer := &fakeScorer{
		result: &TestResult{Label: "ISTJ", Description: "logistician"},
		errs:   []error{ErrNetwork},
	}
	ctrl := newLoadedController(t, scorer)
	ctx := context.Background()

	for _, choice := range []int{0, 1, 2} {
		require.NoError(t, ctrl.SelectOption(choice))
		if ctrl.CurrentIndex() < 2 {
			require.NoError(t, ctrl.Advance(ctx))
		}
	}

	require.ErrorIs(t, ctrl.Advance(ctx), ErrNetwork)
	assert.Equal(t, StateSubmitFailed, ctrl.State())
	assert.Equal(t, 2, ctrl.CurrentIndex())
	assert.Equal(t, 2, ctrl.Selected())

	require.NoError(t, ctrl.RetrySubmission(ctx))
	assert.Equal(t, StateCompleted, ctrl.State())

	require.Len(t, scorer.payloads, 2)
	assert.Equal(t, scorer.payloads[0], scorer.payloads[1])
}

func TestRetrySubmissionOnlyAfterFailure(t *testing.T) {
	ctrl := newLoadedController(t, &fakeScorer{result: &TestResult{Label: "x"}})

	var sErr *StateError
	require.ErrorAs(t, ctrl.RetrySubmission(context.Background()), &sErr)
}

// reentrantScorer calls back into the controller while a submission is in
// flight, standing in for a second caller racing the request.
type reentrantScorer struct {
	ctrl     *Controller
	observed []error
	result   *TestResult
}

func (f *reentrantScorer) SubmitAnswers(ctx context.Context, testID string, answers []Answer) (*TestResult, error) {
	f.observed = append(f.observed,
		f.ctrl.Advance(ctx),
		f.ctrl.SelectOption(0),
		f.ctrl.LoadTest(ctx, "7"),
	)
	return f.result, nil
}

func TestOperationsRejectedWhileSubmitting(t *testing.T) {
	scorer := &reentrantScorer{result: &TestResult{Label: "done"}}
	ctrl := NewController(&fakeCatalog{test: threeQuestionTest()}, scorer)
	scorer.ctrl = ctrl
	ctx := context.Background()

	require.NoError(t, ctrl.LoadTest(ctx, "7"))
	for range ctrl.Test().Questions {
		require.NoError(t, ctrl.SelectOption(0))
		require.NoError(t, ctrl.Advance(ctx))
	}

	require.Len(t, scorer.observed, 3)
	var cErr *ConcurrentOperationError
	for _, err := range scorer.observed {
		assert.ErrorAs(t, err, &cErr)
	}
	assert.Equal(t, StateCompleted, ctrl.State())
}

func TestAdvanceAfterCompletionRejected(t *testing.T) {
	ctrl := newLoadedController(t, &fakeScorer{result: &TestResult{Label: "x"}})
	ctx := context.Background()

	for range ctrl.Test().Questions {
		require.NoError(t, ctrl.SelectOption(0))
		require.NoError(t, ctrl.Advance(ctx))
	}
	require.Equal(t, StateCompleted, ctrl.State())

	var sErr *StateError
	require.ErrorAs(t, ctrl.Advance(ctx), &sErr)
	assert.Equal(t, StateCompleted, ctrl.State())
}
