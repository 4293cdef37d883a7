package payflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsavehub/smartsave/internal/api"
	"github.com/smartsavehub/smartsave/internal/model"
)

// recorder captures everything the controller does, in order.
type recorder struct {
	mu     sync.Mutex
	events []string
	cards  map[int]model.CardUpdate
	shown  []model.Receipt
	toasts []string
}

func newRecorder() *recorder { return &recorder{cards: map[int]model.CardUpdate{}} }

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ShowProcessing(op Operation) { r.add(fmt.Sprintf("processing:%d:%d", op.GoalIndex, op.Amount)) }
func (r *recorder) CloseOverlay() { r.add("close") }
func (r *recorder) ShowReceipt(rc model.Receipt) {
	r.mu.Lock()
	r.shown = append(r.shown, rc)
	r.mu.Unlock()
	r.add("receipt")
}
func (r *recorder) UpdateGoalCard(index int, u model.CardUpdate) {
	r.mu.Lock()
	r.cards[index] = u
	r.mu.Unlock()
	r.add("card")
}
func (r *recorder) Toast(msg string) {
	r.mu.Lock()
	r.toasts = append(r.toasts, msg)
	r.mu.Unlock()
	r.add("toast")
}
func (r *recorder) Celebrate(name string) { r.add("celebrate:" + name) }
func (r *recorder) SetJustCompleted(name string) error {
	r.add("marker:" + name)
	return nil
}
func (r *recorder) SaveReceipt(model.Receipt) error { r.add("ledger"); return nil }

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeAdder struct {
	mu    sync.Mutex
	calls []int64
	res   *api.AddMoneyResult
	err   error
}

func (f *fakeAdder) AddMoney(_ context.Context, _ int, amount int64) (*api.AddMoneyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, amount)
	return f.res, f.err
}

func (f *fakeAdder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// manualTimer hands the delay to the test and fires only when told to.
type manualTimer struct {
	requested chan time.Duration
	fire      chan time.Time
}

func newManualTimer() *manualTimer {
	return &manualTimer{requested: make(chan time.Duration, 1), fire: make(chan time.Time)}
}

func (m *manualTimer) after(d time.Duration) <-chan time.Time {
	m.requested <- d
	return m.fire
}

func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

var fixedNow = func() time.Time { return time.Date(2025, 1, 30, 14, 5, 0, 0, time.Local) }

func newTestController(adder Adder, rec *recorder, after func(time.Duration) <-chan time.Time) *Controller {
	return New(adder,
		WithRenderer(rec),
		WithCelebrator(rec),
		WithPrefs(rec),
		WithLedger(rec),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(after, fixedNow),
	)
}

func okResult(completed bool) *api.AddMoneyResult {
	return &api.AddMoneyResult{
		Success:     true,
		Percent:     45,
		Saved:       450,
		Target:      1000,
		Nudge:       "Keep going!",
		IsCompleted: completed,
		HistoryItem: &model.HistoryItem{Date: "30 Jan", Amount: 50, Time: "14:05"},
	}
}

func TestRun_Success(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{res: okResult(false)}
	c := newTestController(adder, rec, immediate)

	out := c.Run(context.Background(), Operation{GoalIndex: 2, Amount: 50, GoalName: "Bike"})
	require.NoError(t, out.Err)
	assert.Equal(t, Success, out.State)
	assert.Equal(t, Success, c.State())
	assert.Equal(t, []int64{50}, adder.calls)

	require.NotNil(t, out.Receipt)
	assert.Regexp(t, regexp.MustCompile(`^TXN\d{8}$`), out.Receipt.TxnID)
	assert.Equal(t, "14:05", out.Receipt.Time)
	assert.Equal(t, int64(50), out.Receipt.Amount)
	assert.Equal(t, "Bike", out.Receipt.GoalName, "falls back to the board name")

	u, ok := rec.cards[2]
	require.True(t, ok)
	assert.Equal(t, 45, u.Percent)
	assert.Equal(t, int64(450), u.Saved)
	require.NotNil(t, u.HistoryItem)
	assert.Equal(t, int64(50), u.HistoryItem.Amount)

	assert.Equal(t, []string{"processing:2:50", "card", "ledger", "receipt", "toast"}, rec.snapshot())
	assert.Equal(t, "Saved ₹50! Keep going!", rec.toasts[0])

	assert.False(t, c.Dismiss(), "no reload without completion")
	assert.Equal(t, Idle, c.State())
}

func TestRun_DelayBoundsAndNoCallBeforeTimer(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{res: okResult(false)}
	timer := newManualTimer()
	c := newTestController(adder, rec, timer.after)

	done := make(chan Outcome, 1)
	go func() { done <- c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 10}) }()

	d := <-timer.requested
	assert.GreaterOrEqual(t, d, MinDelay)
	assert.LessOrEqual(t, d, MaxDelay)
	assert.Equal(t, d, c.LastDelay())
	assert.Equal(t, Processing, c.State())
	assert.Zero(t, adder.callCount(), "no network call while processing")

	timer.fire <- time.Time{}
	out := <-done
	assert.Equal(t, Success, out.State)
	assert.Equal(t, 1, adder.callCount())
}

func TestNextDelay_StaysInRange(t *testing.T) {
	c := New(&fakeAdder{}, WithRand(rand.New(rand.NewPCG(7, 7))))
	for range 2000 {
		d := c.nextDelay()
		require.GreaterOrEqual(t, d, MinDelay)
		require.LessOrEqual(t, d, MaxDelay)
		require.Zero(t, d%time.Millisecond)
	}
}

func TestRun_CompletionPersistsMarkerBeforeReload(t *testing.T) {
	rec := newRecorder()
	res := okResult(true)
	res.Name = "Goa Trip"
	c := newTestController(&fakeAdder{res: res}, rec, immediate)

	out := c.Run(context.Background(), Operation{GoalIndex: 1, Amount: 500, GoalName: "stale"})
	require.NoError(t, out.Err)
	assert.Equal(t, "Goa Trip", out.Receipt.GoalName)

	events := rec.snapshot()
	marker := indexOf(events, "marker:Goa Trip")
	celebrate := indexOf(events, "celebrate:Goa Trip")
	require.NotEqual(t, -1, marker)
	require.NotEqual(t, -1, celebrate)
	assert.Less(t, marker, celebrate)

	assert.True(t, c.Dismiss(), "completion arms exactly one reload")
	assert.False(t, c.Dismiss())
}

func TestRun_UndismissedResultRefusesNextRun(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{res: okResult(true)}
	c := newTestController(adder, rec, immediate)

	first := c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 100, GoalName: "Bike"})
	require.Equal(t, Success, first.State)

	second := c.Run(context.Background(), Operation{GoalIndex: 1, Amount: 20})
	assert.ErrorIs(t, second.Err, ErrBusy)
	assert.Equal(t, Success, second.State)
	assert.Equal(t, []int64{100}, adder.calls, "no call for the refused run")

	assert.True(t, c.Dismiss(), "the armed reload survives the refused run")
	assert.Equal(t, Idle, c.State())

	third := c.Run(context.Background(), Operation{GoalIndex: 1, Amount: 20})
	assert.NoError(t, third.Err)
	assert.Equal(t, []int64{100, 20}, adder.calls)
}

func TestRun_FailedResultRefusesNextRunUntilDismissed(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{err: &api.ServerError{Status: 400, Message: "nope"}}
	c := newTestController(adder, rec, immediate)

	require.Equal(t, Failed, c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 10}).State)
	assert.ErrorIs(t, c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 10}).Err, ErrBusy)

	c.Dismiss()
	assert.Equal(t, Failed, c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 10}).State)
	assert.Equal(t, 2, adder.callCount())
}

func TestRun_ServerFailure(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{err: &api.ServerError{Status: 400, Message: "Invalid goal index"}}
	c := newTestController(adder, rec, immediate)

	out := c.Run(context.Background(), Operation{GoalIndex: 9, Amount: 10})
	assert.Equal(t, Failed, out.State)
	assert.Equal(t, "Invalid goal index", out.Message)
	assert.Nil(t, out.Receipt)
	assert.Empty(t, rec.cards, "card untouched on failure")
	assert.Equal(t, []string{"processing:9:10", "close", "toast"}, rec.snapshot())
	assert.Equal(t, []string{"Invalid goal index"}, rec.toasts)

	assert.False(t, c.Dismiss())
	assert.Equal(t, Idle, c.State())
}

func TestRun_ServerFailureWithoutMessage(t *testing.T) {
	rec := newRecorder()
	c := newTestController(&fakeAdder{err: &api.ServerError{Status: 200}}, rec, immediate)

	out := c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 10})
	assert.Equal(t, "Payment failed. Please try again.", out.Message)
}

func TestRun_TransportFailure(t *testing.T) {
	rec := newRecorder()
	c := newTestController(&fakeAdder{err: errors.New("dial tcp: connection refused")}, rec, immediate)

	out := c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 10})
	assert.Equal(t, Failed, out.State)
	assert.Equal(t, NetworkErrorMessage, out.Message)
	assert.Empty(t, rec.cards)
	assert.Empty(t, rec.shown)
}

func TestRun_CancelDuringDelay(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{res: okResult(false)}
	timer := newManualTimer()
	c := newTestController(adder, rec, timer.after)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Outcome, 1)
	go func() { done <- c.Run(ctx, Operation{GoalIndex: 0, Amount: 10}) }()

	<-timer.requested
	cancel()
	out := <-done

	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Equal(t, Idle, out.State)
	assert.Equal(t, Idle, c.State())
	assert.Zero(t, adder.callCount())
	assert.Equal(t, []string{"processing:0:10", "close"}, rec.snapshot())
}

func TestRun_BusyWhileProcessing(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{res: okResult(false)}
	timer := newManualTimer()
	c := newTestController(adder, rec, timer.after)

	done := make(chan Outcome, 1)
	go func() { done <- c.Run(context.Background(), Operation{GoalIndex: 0, Amount: 10}) }()
	<-timer.requested

	second := c.Run(context.Background(), Operation{GoalIndex: 1, Amount: 20})
	assert.ErrorIs(t, second.Err, ErrBusy)

	timer.fire <- time.Time{}
	<-done
	assert.Equal(t, []int64{10}, adder.calls)
}

func TestRun_InvalidOperation(t *testing.T) {
	rec := newRecorder()
	adder := &fakeAdder{res: okResult(false)}
	c := newTestController(adder, rec, immediate)

	for _, op := range []Operation{{GoalIndex: 0, Amount: 0}, {GoalIndex: 0, Amount: -5}, {GoalIndex: -1, Amount: 5}} {
		out := c.Run(context.Background(), op)
		assert.ErrorIs(t, out.Err, ErrInvalidOperation)
	}
	assert.Zero(t, adder.callCount())
	assert.Empty(t, rec.snapshot())
}

func TestDismiss_IdleIsNoop(t *testing.T) {
	rec := newRecorder()
	c := newTestController(&fakeAdder{}, rec, immediate)
	assert.False(t, c.Dismiss())
	assert.Empty(t, rec.snapshot())
}

func TestRun_ReceiptAmountMatchesEntry(t *testing.T) {
	for _, amount := range []int64{1, 10, 99, 1234, 100000} {
		rec := newRecorder()
		adder := &fakeAdder{res: okResult(false)}
		c := newTestController(adder, rec, immediate)

		out := c.Run(context.Background(), Operation{GoalIndex: 0, Amount: amount})
		require.NoError(t, out.Err)
		assert.Equal(t, amount, out.Receipt.Amount)
		assert.Equal(t, []int64{amount}, adder.calls)
		c.Dismiss()
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "processing", Processing.String())
	assert.Equal(t, "state(9)", State(9).String())
}

func indexOf(events []string, want string) int {
	for i, e := range events {
		if e == want {
			return i
		}
	}
	return -1
}
