// Package payflow runs the simulated payment flow for adding money to a goal.
//
// A flow moves Idle -> Processing -> Success | Failed and back to Idle on dismissal.
// Processing shows an overlay, waits a randomized delay that stands in for bank latency,
// then makes one add-money call. Rendering, celebration and persistence are injected.
package payflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/api"
	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/model"
)

// Bounds of the simulated processing delay, inclusive.
const (
	MinDelay = 1500 * time.Millisecond
	MaxDelay = 2500 * time.Millisecond
)

const (
	txnPrefix = "TXN"
	// NetworkErrorMessage is shown for any transport failure.
	NetworkErrorMessage = "Network error. Please check your connection and try again."
)

var (
	// ErrBusy is returned when a flow is in flight or its result is not yet dismissed.
	ErrBusy = errors.New("payflow: a payment is already in progress")
	// ErrInvalidOperation is returned for a negative index or non-positive amount.
	ErrInvalidOperation = errors.New("payflow: invalid operation")
)

// State is a payment flow state.
type State int

const (
	Idle State = iota
	Processing
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Success:
		return "success"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Operation is the goal and amount a flow applies to.
type Operation struct {
	GoalIndex int
	Amount    int64
	// GoalName labels the receipt when the server response omits it.
	GoalName string
}

// Validate checks the operation can be sent.
func (op Operation) Validate() error {
	if op.GoalIndex < 0 {
		return fmt.Errorf("%w: goal index %d", ErrInvalidOperation, op.GoalIndex)
	}
	if op.Amount <= 0 {
		return fmt.Errorf("%w: amount %d", ErrInvalidOperation, op.Amount)
	}
	return nil
}

// Outcome is the result of one Run.
type Outcome struct {
	Op      Operation
	State   State
	Result  *api.AddMoneyResult
	Receipt *model.Receipt
	// Message is the user-facing text shown for the outcome.
	Message string
	Err     error
}

// Adder performs the add-money call.
type Adder interface {
	AddMoney(ctx context.Context, index int, amount int64) (*api.AddMoneyResult, error)
}

// Renderer displays flow progress. Calls arrive on the goroutine running the flow.
type Renderer interface {
	ShowProcessing(op Operation)
	ShowReceipt(r model.Receipt)
	CloseOverlay()
	UpdateGoalCard(index int, u model.CardUpdate)
	Toast(msg string)
}

// Celebrator plays the goal-completed animation.
type Celebrator interface {
	Celebrate(goalName string)
}

// Prefs persists the one-shot completion marker.
type Prefs interface {
	SetJustCompleted(name string) error
}

// Ledger records receipts locally.
type Ledger interface {
	SaveReceipt(r model.Receipt) error
}

// Controller runs payment flows one at a time.
type Controller struct {
	client     Adder
	renderer   Renderer
	celebrator Celebrator
	prefs      Prefs
	ledger     Ledger
	after      func(time.Duration) <-chan time.Time
	now        func() time.Time
	log        *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	mu          sync.Mutex
	state       State
	reloadArmed bool
	lastDelay   time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option { return func(c *Controller) { c.renderer = r } }

// WithCelebrator sets the celebration capability.
func WithCelebrator(cb Celebrator) Option { return func(c *Controller) { c.celebrator = cb } }

// WithPrefs sets where the completion marker is persisted.
func WithPrefs(p Prefs) Option { return func(c *Controller) { c.prefs = p } }

// WithLedger sets where receipts are recorded.
func WithLedger(l Ledger) Option { return func(c *Controller) { c.ledger = l } }

// WithRand sets the randomness source for delays and transaction ids.
func WithRand(r *rand.Rand) Option { return func(c *Controller) { c.rng = r } }

// WithClock sets the timer and wall clock.
func WithClock(after func(time.Duration) <-chan time.Time, now func() time.Time) Option {
	return func(c *Controller) {
		c.after = after
		c.now = now
	}
}

// New creates a controller. Collaborators not supplied are no-ops.
func New(client Adder, opts ...Option) *Controller {
	c := &Controller{
		client:     client,
		renderer:   NopRenderer{},
		celebrator: NopCelebrator{},
		prefs:      nopPrefs{},
		ledger:     nopLedger{},
		after:      time.After,
		now:        time.Now,
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5a7e)),
		log:        logging.L().Named("payflow"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastDelay returns the delay chosen for the most recent flow.
func (c *Controller) LastDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDelay
}

// Run executes one payment flow and blocks until it resolves.
// Cancelling ctx during the simulated delay returns to Idle without a network call.
func (c *Controller) Run(ctx context.Context, op Operation) Outcome {
	if err := op.Validate(); err != nil {
		return Outcome{Op: op, State: Idle, Err: err, Message: "Please enter a valid amount greater than 0."}
	}

	delay := c.nextDelay()
	c.mu.Lock()
	// A resolved flow must be dismissed first so an armed reload is never lost.
	if c.state != Idle {
		state := c.state
		c.mu.Unlock()
		return Outcome{Op: op, State: state, Err: ErrBusy, Message: "A payment is already in progress."}
	}
	c.state = Processing
	c.reloadArmed = false
	c.lastDelay = delay
	c.mu.Unlock()

	log := c.log.With(zap.Int("goal_index", op.GoalIndex), zap.Int64("amount", op.Amount))
	log.Info("payment processing", zap.Duration("delay", delay))
	c.renderer.ShowProcessing(op)

	select {
	case <-ctx.Done():
		c.setState(Idle)
		c.renderer.CloseOverlay()
		log.Info("payment cancelled during processing")
		return Outcome{Op: op, State: Idle, Err: ctx.Err()}
	case <-c.after(delay):
	}

	// Only the delay is cancellable; a request already sent is left to finish.
	res, err := c.client.AddMoney(context.WithoutCancel(ctx), op.GoalIndex, op.Amount)
	if err != nil {
		return c.fail(op, res, err, log)
	}
	return c.succeed(op, res, log)
}

func (c *Controller) succeed(op Operation, res *api.AddMoneyResult, log *zap.Logger) Outcome {
	name := res.Name
	if name == "" {
		name = op.GoalName
	}

	c.renderer.UpdateGoalCard(op.GoalIndex, res.CardUpdate())

	now := c.now()
	receipt := model.Receipt{
		TxnID:     c.txnID(),
		GoalIndex: op.GoalIndex,
		GoalName:  name,
		Amount:    op.Amount,
		Time:      now.Format("15:04"),
		At:        now,
	}
	if err := c.ledger.SaveReceipt(receipt); err != nil {
		log.Warn("saving receipt", zap.Error(err))
	}

	c.setState(Success)
	c.renderer.ShowReceipt(receipt)
	msg := fmt.Sprintf("Saved ₹%d! %s", op.Amount, res.Nudge)
	c.renderer.Toast(msg)

	if res.IsCompleted {
		// The marker must be durable before a reload can be requested.
		if err := c.prefs.SetJustCompleted(name); err != nil {
			log.Warn("persisting completion marker", zap.Error(err))
		}
		c.celebrator.Celebrate(name)
		c.mu.Lock()
		c.reloadArmed = true
		c.mu.Unlock()
	}

	log.Info("payment succeeded",
		zap.String("txn_id", receipt.TxnID),
		zap.Int64("saved", res.Saved),
		zap.Bool("completed", res.IsCompleted))
	return Outcome{Op: op, State: Success, Result: res, Receipt: &receipt, Message: msg}
}

func (c *Controller) fail(op Operation, res *api.AddMoneyResult, err error, log *zap.Logger) Outcome {
	msg := NetworkErrorMessage
	var se *api.ServerError
	if errors.As(err, &se) {
		msg = "Payment failed. Please try again."
		if se.Message != "" {
			msg = se.Message
		}
	}

	c.setState(Failed)
	c.renderer.CloseOverlay()
	c.renderer.Toast(msg)

	log.Warn("payment failed", zap.Error(err), zap.Bool("server_reported", se != nil))
	return Outcome{Op: op, State: Failed, Result: res, Message: msg, Err: err}
}

// Dismiss closes a resolved flow and returns to Idle. The caller hides the receipt.
// It reports true exactly once after a flow that completed its goal; the caller
// should then reload the board so server-rendered completion state shows.
func (c *Controller) Dismiss() (reload bool) {
	c.mu.Lock()
	if c.state != Success && c.state != Failed {
		c.mu.Unlock()
		return false
	}
	c.state = Idle
	reload = c.reloadArmed
	c.reloadArmed = false
	c.mu.Unlock()
	return reload
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// nextDelay picks a delay uniformly in [MinDelay, MaxDelay] at millisecond resolution.
func (c *Controller) nextDelay() time.Duration {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	span := int64((MaxDelay - MinDelay) / time.Millisecond)
	return MinDelay + time.Duration(c.rng.Int64N(span+1))*time.Millisecond
}

// txnID returns the fixed prefix followed by an 8-digit pseudo-random number.
func (c *Controller) txnID() string {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return fmt.Sprintf("%s%d", txnPrefix, 10_000_000+c.rng.IntN(90_000_000))
}
