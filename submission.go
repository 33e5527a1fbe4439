package chatmbti

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Phase is a step of the submission lifecycle.
type Phase int

// Submission phases.
const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SubmissionState is the user-visible submission status.
type SubmissionState struct {
	Phase   Phase
	Message string // Localized status text; empty while idle
	Err     error  // Set in PhaseError
}

// Controller runs the submission lifecycle:
//
//	Idle → Validating → Loading → Success | Error
//
// and Success|Error → Validating on the next attempt. It owns the current
// Sections and opens the overview panel of its Disclosure on success.
// A Controller has a single writer and is not safe for concurrent use.
type Controller struct {
	analyzer   Analyzer
	disclosure *Disclosure
	locale     Locale
	onChange   func(from, to Phase)

	state    SubmissionState
	sections *Sections
	attempt  int
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLocale sets the catalog used for status messages and mapping.
func WithLocale(l Locale) ControllerOption {
	return func(c *Controller) {
		c.locale = l
	}
}

// WithTransitionHook registers fn to be called on every phase change.
func WithTransitionHook(fn func(from, to Phase)) ControllerOption {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// NewController returns an idle Controller. A nil disclosure gets the
// default one.
func NewController(analyzer Analyzer, disclosure *Disclosure, opts ...ControllerOption) *Controller {
	if disclosure == nil {
		disclosure = DefaultDisclosure(nil)
	}
	c := &Controller{
		analyzer:   analyzer,
		disclosure: disclosure,
		locale:     English(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current submission state.
func (c *Controller) State() SubmissionState {
	return c.state
}

// Sections returns the view models of the last successful analysis, or nil
// when none is current.
func (c *Controller) Sections() *Sections {
	return c.sections
}

// Disclosure returns the disclosure controller driven on success.
func (c *Controller) Disclosure() *Disclosure {
	return c.disclosure
}

// Locale returns the catalog in use.
func (c *Controller) Locale() Locale {
	return c.locale
}

// Attempt returns the number of the most recent attempt that reached
// Loading, starting at 1.
func (c *Controller) Attempt() int {
	return c.attempt
}

// Begin starts a new attempt. Prior sections are cleared immediately. If
// validation fails the controller moves to Error and ok is false; otherwise
// it moves to Loading and returns the submission to send with its attempt
// number. Begin never calls the Analyzer.
func (c *Controller) Begin(name string, files []File) (s Submission, attempt int, ok bool) {
	c.sections = nil
	c.transition(SubmissionState{Phase: PhaseValidating})

	name = strings.TrimSpace(name)
	if name == "" {
		c.fail(&ValidationError{Err: ErrNoName, Message: c.locale.Status.MissingName})
		return Submission{}, 0, false
	}
	if len(files) == 0 {
		c.fail(&ValidationError{Err: ErrNoFiles, Message: c.locale.Status.MissingFiles})
		return Submission{}, 0, false
	}

	c.attempt++
	c.transition(SubmissionState{Phase: PhaseLoading, Message: c.locale.Status.Loading})
	return Submission{UserName: name, Files: append([]File(nil), files...)}, c.attempt, true
}

// Finish applies the outcome of an attempt. Responses are applied in arrival
// order: a response for an older attempt still replaces the current state.
// It returns false when attempt is not the most recent one.
func (c *Controller) Finish(attempt int, result *AnalysisResult, err error) bool {
	current := attempt == c.attempt
	if err == nil && result == nil {
		err = &MalformedResponseError{Err: errors.New("empty result")}
	}
	if err != nil {
		c.sections = nil
		c.fail(err)
		return current
	}

	sections := MapSections(result, c.locale)
	c.sections = &sections
	c.disclosure.Open(PanelOverview)
	c.transition(SubmissionState{Phase: PhaseSuccess, Message: c.locale.Status.Success})
	return current
}

// Submit runs one full attempt synchronously and returns the final state.
func (c *Controller) Submit(ctx context.Context, name string, files []File) SubmissionState {
	s, attempt, ok := c.Begin(name, files)
	if !ok {
		return c.state
	}
	result, err := c.analyzer.Analyze(ctx, s)
	c.Finish(attempt, result, err)
	return c.state
}

func (c *Controller) fail(err error) {
	c.transition(SubmissionState{Phase: PhaseError, Message: c.errorMessage(err), Err: err})
}

// errorMessage renders err for the status indicator. Transport errors keep
// the status code and server text; malformed bodies get a generic message.
func (c *Controller) errorMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var merr *MalformedResponseError
	if errors.As(err, &merr) {
		return fmt.Sprintf(c.locale.Status.Failure, c.locale.Status.MalformedResponse)
	}
	return fmt.Sprintf(c.locale.Status.Failure, err.Error())
}

func (c *Controller) transition(next SubmissionState) {
	from := c.state.Phase
	c.state = next
	if c.onChange != nil {
		c.onChange(from, next.Phase)
	}
}
