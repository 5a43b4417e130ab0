// Package orchestrator drives one e-ID authentication attempt end to end:
// start, the 2-second collect loop, cancellation and the terminal outcome.
// It owns all per-attempt state itself, so concurrent orchestrator
// instances never interfere.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/service"
	"github.com/nordbook/eid-gateway/internal/soap"
)

type State string

const (
	StateIdle           State = "idle"
	StateAuthenticating State = "authenticating"
	StateComplete       State = "complete"
	StateError          State = "error"
)

// A poll tick does not retry a transport failure; the next tick is the
// retry. This many consecutive failures ends the attempt instead of
// polling a dead endpoint forever.
const maxTransportStrikes = 3

// Callbacks receive flow progress. OnComplete and OnError are mutually
// exclusive and fire exactly once per started attempt. OnStatus and
// OnLaunch are conveniences for the UI layer and may fire zero or more
// times (OnLaunch at most once).
type Callbacks struct {
	OnStatus   func(message string)
	OnLaunch   func(launchURL string)
	OnComplete func(completion *models.CompletionData)
	OnError    func(message string)
}

type Options struct {
	PollInterval time.Duration
	MaxPolls     int
}

// StartOptions describe one attempt. Empty PersonalNumber selects the
// same-device flow. UserAgent, when present, decides whether the app
// deep-link is offered automatically.
type StartOptions struct {
	PersonalNumber string
	ClientIP       string
	UserAgent      string
}

// Orchestrator is the client-facing state machine. One attempt may be
// active at a time; starting a new one cancels the active one first.
type Orchestrator struct {
	provider  service.IdentityProvider
	callbacks Callbacks
	opts      Options

	mu       sync.Mutex
	state    State
	session  *models.AuthSession
	stopPoll context.CancelFunc
	// gen identifies the current attempt. Every transition carries the
	// generation it belongs to, so a response still in flight when the
	// user cancels can never resurrect a dead attempt.
	gen uint64
}

func New(provider service.IdentityProvider, callbacks Callbacks, opts Options) *Orchestrator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.MaxPolls <= 0 {
		opts.MaxPolls = 90
	}
	return &Orchestrator{
		provider:  provider,
		callbacks: callbacks,
		opts:      opts,
		state:     StateIdle,
	}
}

// State returns the current machine state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Session returns a copy of the active session, if any. The QR material in
// it is what a same-device UI renders.
func (o *Orchestrator) Session() *models.AuthSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return nil
	}
	session := *o.session
	return &session
}

// Start begins a brand-new attempt. A previous attempt, active or
// terminal, is discarded; its orderRef is never polled again. The error
// return mirrors OnError for callers that prefer synchronous handling.
func (o *Orchestrator) Start(ctx context.Context, startOpts StartOptions) error {
	o.mu.Lock()
	if o.state == StateAuthenticating {
		o.stopPollLocked()
		if o.session != nil {
			o.fireAndForgetCancel(o.session.OrderRef)
		}
	}
	o.gen++
	gen := o.gen
	o.state = StateIdle
	o.session = nil
	attemptID := uuid.NewString()
	o.mu.Unlock()

	session, err := o.provider.Initiate(ctx, startOpts.PersonalNumber, startOpts.ClientIP)
	if err != nil {
		log.Error().Err(err).Str("attempt", attemptID).Msg("authentication could not be started")
		o.transition(gen, StateError, nil, "Authentication could not be started. Please try again.")
		return err
	}

	pollCtx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	if gen != o.gen {
		// A newer attempt raced us while Initiate was in flight; this
		// session is already dead.
		o.mu.Unlock()
		cancel()
		o.fireAndForgetCancel(session.OrderRef)
		return nil
	}
	o.state = StateAuthenticating
	o.session = session
	o.stopPoll = cancel
	o.mu.Unlock()

	log.Info().
		Str("attempt", attemptID).
		Str("orderRef", session.OrderRef).
		Msg("authentication attempt started")

	if launchURL := appLaunchURL(session.AutoStartToken, startOpts.UserAgent); launchURL != "" && o.callbacks.OnLaunch != nil {
		// Convenience only; must never block or delay the poll loop.
		go o.callbacks.OnLaunch(launchURL)
	}

	go o.poll(pollCtx, gen, session.OrderRef)
	return nil
}

// Cancel stops an active attempt immediately. The local attempt is over
// the moment this returns; the remote cancel is fire-and-forget. Calling
// Cancel in any state but authenticating is a no-op.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	if o.state != StateAuthenticating {
		o.mu.Unlock()
		return
	}
	orderRef := o.session.OrderRef
	o.stopPollLocked()
	o.gen++
	o.state = StateIdle
	o.session = nil
	o.mu.Unlock()

	log.Info().Str("orderRef", orderRef).Msg("authentication attempt cancelled by user")
	o.fireAndForgetCancel(orderRef)
}

func (o *Orchestrator) poll(ctx context.Context, gen uint64, orderRef string) {
	ticker := time.NewTicker(o.opts.PollInterval)
	defer ticker.Stop()

	transportStrikes := 0
	for polls := 0; ; {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		polls++
		if polls > o.opts.MaxPolls {
			log.Warn().Str("orderRef", orderRef).Int("polls", polls-1).Msg("authentication attempt exceeded poll ceiling")
			o.transition(gen, StateError, nil, "Authentication timed out. Please try again.")
			return
		}

		session, err := o.provider.Collect(ctx, orderRef)
		if ctx.Err() != nil {
			// Cancelled while the request was in flight; whatever came
			// back is stale and must not move the machine.
			return
		}
		if err != nil {
			if errors.Is(err, soap.ErrProtocol) {
				log.Error().Err(err).Str("orderRef", orderRef).Msg("status poll returned malformed response")
				o.transition(gen, StateError, nil, genericFailureMessage)
				return
			}
			transportStrikes++
			log.Warn().Err(err).Int("strikes", transportStrikes).Str("orderRef", orderRef).Msg("status poll failed")
			if transportStrikes >= maxTransportStrikes {
				o.transition(gen, StateError, nil, "Authentication service is unavailable. Please try again.")
				return
			}
			continue
		}
		transportStrikes = 0

		switch session.Status {
		case models.StatusComplete:
			o.transition(gen, StateComplete, session.Completion, "")
			return
		case models.StatusFailed:
			o.transition(gen, StateError, nil, failureMessage(session.HintCode))
			return
		default:
			o.updateHint(gen, session.HintCode)
		}
	}
}

// transition moves the machine to a terminal state and fires the matching
// callback, unless the attempt identified by gen is no longer current or a
// terminal callback already fired.
func (o *Orchestrator) transition(gen uint64, to State, completion *models.CompletionData, errMessage string) {
	o.mu.Lock()
	if gen != o.gen || o.state == StateComplete || o.state == StateError {
		o.mu.Unlock()
		return
	}
	o.stopPollLocked()
	o.state = to
	if o.session != nil && to == StateComplete {
		o.session.Status = models.StatusComplete
		o.session.Completion = completion
	}
	o.mu.Unlock()

	switch to {
	case StateComplete:
		if o.callbacks.OnComplete != nil {
			o.callbacks.OnComplete(completion)
		}
	case StateError:
		if o.callbacks.OnError != nil {
			o.callbacks.OnError(errMessage)
		}
	}
}

func (o *Orchestrator) updateHint(gen uint64, hintCode string) {
	o.mu.Lock()
	if gen != o.gen || o.state != StateAuthenticating {
		o.mu.Unlock()
		return
	}
	if o.session != nil {
		o.session.HintCode = hintCode
	}
	o.mu.Unlock()

	if o.callbacks.OnStatus != nil {
		o.callbacks.OnStatus(progressMessage(hintCode))
	}
}

func (o *Orchestrator) stopPollLocked() {
	if o.stopPoll != nil {
		o.stopPoll()
		o.stopPoll = nil
	}
}

func (o *Orchestrator) fireAndForgetCancel(orderRef string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.provider.Cancel(ctx, orderRef)
	}()
}
