// Package session drives a single user through one test attempt: load the
// definition, collect one answer per question in order, submit once, and hold
// the scored result. All operations are called from one control flow; the
// explicit state guards replace the disabled-button convention a UI would use.
package session

import "context"

// Unanswered is the sentinel for a question position with no selection yet.
const Unanswered = -1

// Controller is a single-session state machine. It is not safe for
// concurrent use; callers drive it from one goroutine and surface the typed
// errors it returns.
type Controller struct {
	catalog Catalog
	scorer  Scorer

	state   State
	lastErr error

	testID  string
	test    *TestDefinition
	answers []int
	current int
	result  *TestResult
}

func NewController(catalog Catalog, scorer Scorer) *Controller {
	return &Controller{catalog: catalog, scorer: scorer, state: StateIdle}
}

// State reports the current lifecycle position.
func (c *Controller) State() State { return c.state }

// Err reports the failure behind LoadFailed or SubmitFailed, nil otherwise.
func (c *Controller) Err() error {
	if c.state == StateLoadFailed || c.state == StateSubmitFailed {
		return c.lastErr
	}
	return nil
}

// Test returns the loaded definition, nil before a successful load.
func (c *Controller) Test() *TestDefinition { return c.test }

// Result returns the classification once the session is Completed.
func (c *Controller) Result() *TestResult {
	if c.state != StateCompleted {
		return nil
	}
	return c.result
}

// CurrentIndex is the zero-based position of the question being presented.
func (c *Controller) CurrentIndex() int { return c.current }

// CurrentQuestion returns the question at CurrentIndex, nil unless InProgress
// or SubmitFailed (the failed state retains the final question).
func (c *Controller) CurrentQuestion() *Question {
	if c.state != StateInProgress && c.state != StateSubmitFailed {
		return nil
	}
	return &c.test.Questions[c.current]
}

// Selected returns the option index chosen at the current position, or
// Unanswered.
func (c *Controller) Selected() int {
	if c.answers == nil {
		return Unanswered
	}
	return c.answers[c.current]
}

// Progress reports how many questions have an answer and the total count.
func (c *Controller) Progress() (answered, total int) {
	for _, a := range c.answers {
		if a != Unanswered {
			answered++
		}
	}
	return answered, len(c.answers)
}

// LoadTest fetches the definition and starts the session at question zero.
// An empty test id is a no-op: the controller stays in its current state.
// A failed fetch leaves the controller in StateLoadFailed; calling LoadTest
// again is the retry path.
func (c *Controller) LoadTest(ctx context.Context, testID string) error {
	if testID == "" {
		return nil
	}
	if c.state == StateLoading || c.state == StateSubmitting {
		return &ConcurrentOperationError{Op: "LoadTest"}
	}

	c.state = StateLoading
	test, err := c.catalog.FetchTestDefinition(ctx, testID)
	if err != nil {
		c.state = StateLoadFailed
		c.lastErr = err
		return err
	}

	c.testID = testID
	c.test = test
	c.answers = make([]int, len(test.Questions))
	for i := range c.answers {
		c.answers[i] = Unanswered
	}
	c.current = 0
	c.result = nil
	c.lastErr = nil
	c.state = StateInProgress
	return nil
}

// SelectOption records a choice for the current question without advancing.
// Selecting again before Advance overwrites the previous choice.
func (c *Controller) SelectOption(optionIndex int) error {
	if c.state == StateLoading || c.state == StateSubmitting {
		return &ConcurrentOperationError{Op: "SelectOption"}
	}
	if c.state != StateInProgress {
		return &StateError{Op: "SelectOption", State: c.state}
	}
	if optionIndex < 0 || optionIndex >= len(c.test.Questions[c.current].Options) {
		return &ValidationError{Reason: "option index out of range"}
	}
	c.answers[c.current] = optionIndex
	return nil
}

// Advance moves to the next question, or submits when the current question
// is the last one. The current question must be answered first.
func (c *Controller) Advance(ctx context.Context) error {
	if c.state == StateLoading || c.state == StateSubmitting {
		return &ConcurrentOperationError{Op: "Advance"}
	}
	if c.state != StateInProgress {
		return &StateError{Op: "Advance", State: c.state}
	}
	if c.answers[c.current] == Unanswered {
		return &ValidationError{Reason: "no option selected"}
	}

	if c.current < len(c.test.Questions)-1 {
		c.current++
		return nil
	}
	return c.submit(ctx)
}

// RetrySubmission re-sends the retained answers after a failed submission.
// The payload is rebuilt from the same state, so it is identical to the one
// that failed.
func (c *Controller) RetrySubmission(ctx context.Context) error {
	if c.state == StateSubmitting {
		return &ConcurrentOperationError{Op: "RetrySubmission"}
	}
	if c.state != StateSubmitFailed {
		return &StateError{Op: "RetrySubmission", State: c.state}
	}
	return c.submit(ctx)
}

func (c *Controller) submit(ctx context.Context) error {
	c.state = StateSubmitting
	payload := c.buildPayload()

	result, err := c.scorer.SubmitAnswers(ctx, c.testID, payload)
	if err != nil {
		// Answers and position are retained for RetrySubmission.
		c.state = StateSubmitFailed
		c.lastErr = err
		return err
	}

	c.result = result
	c.lastErr = nil
	c.state = StateCompleted
	return nil
}

// buildPayload pairs each question id with the answer at the same position.
func (c *Controller) buildPayload() []Answer {
	payload := make([]Answer, len(c.test.Questions))
	for i, q := range c.test.Questions {
		payload[i] = Answer{QuestionID: q.ID, Answer: c.answers[i]}
	}
	return payload
}
