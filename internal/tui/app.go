// Package tui provides the interactive Bubble Tea dashboard for smartsave.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/smartsavehub/smartsave/internal/api"
	"github.com/smartsavehub/smartsave/internal/config"
	"github.com/smartsavehub/smartsave/internal/logging"
	"github.com/smartsavehub/smartsave/internal/model"
	"github.com/smartsavehub/smartsave/internal/payflow"
	"github.com/smartsavehub/smartsave/internal/store"
	"github.com/smartsavehub/smartsave/internal/tui/components"
	"github.com/smartsavehub/smartsave/internal/tui/theme"
	"github.com/smartsavehub/smartsave/internal/upi"
)

// Toast texts shown by the dashboard.
const (
	GoalRemovedToast = "Goal removed. Let's start a new journey! 🗑️"
	invalidAmountMsg = "Please enter a valid amount greater than 0."
)

// Backend is the subset of the SmartSave server the dashboard talks to.
type Backend interface {
	FetchBoard(ctx context.Context) (*model.Board, error)
	AddMoney(ctx context.Context, index int, amount int64) (*api.AddMoneyResult, error)
	DeleteGoal(ctx context.Context, index int) error
	UPILink(ctx context.Context, index int, amount int64) (string, error)
}

// LocalState is the client-side preference and receipt store.
type LocalState interface {
	Set(key, value string) error
	Take(key string) (string, bool, error)
	SetJustCompleted(name string) error
	SetPendingToast(msg string) error
	SaveReceipt(r model.Receipt) error
	ListReceipts(limit int) ([]model.Receipt, error)
}

// Options wires the dashboard to its collaborators.
type Options struct {
	Backend Backend
	State   LocalState
	Config  config.Config
	QR      upi.Renderer
	// NeedSetup shows the first-run form before the dashboard.
	NeedSetup bool
	// Connect rebinds the backend after the setup form changes the server URL.
	Connect func(baseURL string) (Backend, error)
	// FlowOptions are passed through to the payment controller.
	FlowOptions []payflow.Option
	Rand        *rand.Rand
}

type boardLoadedMsg struct {
	board *model.Board
	err   error
}

type receiptsLoadedMsg struct {
	receipts []model.Receipt
}

type deleteDoneMsg struct {
	index int
	err   error
}

type upiLinkMsg struct {
	op  payflow.Operation
	uri string
	err error
}

type toastExpireMsg struct{ id int }

type receiptExpireMsg struct{ seq int }

type confettiTickMsg struct{}

type tickMsg struct{}

// mode is the interaction layer currently receiving keys.
type mode int

const (
	modeBrowse mode = iota
	modeAmount
	modeConfirm
	modeUPI
	modeDelete
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayProcessing
	overlayReceipt
)

type toast struct {
	id   int
	text string
}

// App is the root Bubble Tea model.
type App struct {
	backend Backend
	state   LocalState
	cfg     config.Config
	qr      upi.Renderer
	log     *zap.Logger
	rng     *rand.Rand

	// Data
	board    *model.Board
	loaded   bool
	loadErr  error
	receipts []model.Receipt

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int
	expanded  map[int]bool
	mode      mode

	// Amount entry and confirmation
	amountIn  textinput.Model
	amountErr string
	upiNext   bool
	upiCode   string
	upiURI    string

	// Payment flow: callbacks stream through flowSub while a flow runs
	ctrl       *payflow.Controller
	flowOpts   []payflow.Option
	connect    func(string) (Backend, error)
	pending    *payflow.Pending
	flowSub    chan tea.Msg
	cancelFlow context.CancelFunc
	flowOp     payflow.Operation
	flowActive bool
	overlay    overlayKind
	receipt    model.Receipt
	receiptSeq int
	receiptEnd time.Time
	processEnd time.Time
	dismissDue bool
	highlight  int

	toasts    []toast
	toastSeq  int
	confetti  *components.Confetti
	spinner   spinner.Model
	reloading bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 110
	minContentHeight = 5
	confettiHeight   = 5
	receiptLimit     = 50
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	in := textinput.New()
	in.Placeholder = "Amount in ₹"
	in.CharLimit = 12
	in.Width = 20
	in.Prompt = "₹ "

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 42))
	}
	qr := opts.QR
	if qr == nil {
		qr = upi.Nop{}
	}

	sub := make(chan tea.Msg, 8)
	bridge := flowBridge{sub: sub}
	flowOpts := []payflow.Option{
		payflow.WithRenderer(bridge),
		payflow.WithCelebrator(bridge),
		payflow.WithPrefs(opts.State),
		payflow.WithLedger(opts.State),
	}
	flowOpts = append(flowOpts, opts.FlowOptions...)

	a := App{
		backend:   opts.Backend,
		state:     opts.State,
		cfg:       opts.Config,
		qr:        qr,
		log:       logging.L().Named("tui"),
		rng:       rng,
		expanded:  make(map[int]bool),
		amountIn:  in,
		ctrl:      payflow.New(opts.Backend, flowOpts...),
		flowOpts:  flowOpts,
		connect:   opts.Connect,
		pending:   payflow.NewPending(),
		flowSub:   sub,
		spinner:   sp,
		highlight: -1,
		needSetup: opts.NeedSetup,
	}
	if a.needSetup {
		vals := setupValuesFrom(opts.Config)
		a.setupVals = &vals
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		loadBoardCmd(a.backend),
		loadReceiptsCmd(a.state),
		a.spinner.Tick,
		tickCmd(),
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if a.cancelFlow != nil {
				a.cancelFlow()
			}
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		return a.updateKeys(msg)

	case boardLoadedMsg:
		a.reloading = false
		a.loaded = true
		a.loadErr = msg.err
		if msg.err != nil {
			a.log.Warn("loading board", zap.Error(msg.err))
			return a, nil
		}
		a.board = msg.board
		a.clampCursor()
		return a, a.consumeMarkers()

	case receiptsLoadedMsg:
		a.receipts = msg.receipts
		return a, nil

	// Payment flow stream
	case flowProcessingMsg:
		a.overlay = overlayProcessing
		a.flowOp = msg.op
		a.processEnd = time.Now().Add(a.ctrl.LastDelay())
		return a, tea.Batch(waitForFlowMsg(a.flowSub), a.spinner.Tick)

	case flowCardMsg:
		if a.board != nil && a.board.Update(msg.index, msg.update) {
			a.highlight = msg.index
		}
		return a, waitForFlowMsg(a.flowSub)

	case flowReceiptMsg:
		a.overlay = overlayReceipt
		a.receipt = msg.receipt
		a.receiptSeq++
		timeout := a.receiptTimeout()
		a.receiptEnd = time.Now().Add(timeout)
		seq := a.receiptSeq
		return a, tea.Batch(
			waitForFlowMsg(a.flowSub),
			tea.Tick(timeout, func(time.Time) tea.Msg { return receiptExpireMsg{seq: seq} }),
		)

	case flowCloseMsg:
		a.overlay = overlayNone
		return a, waitForFlowMsg(a.flowSub)

	case flowToastMsg:
		return a, tea.Batch(waitForFlowMsg(a.flowSub), a.pushToast(msg.text))

	case flowCelebrateMsg:
		return a, tea.Batch(waitForFlowMsg(a.flowSub), a.startConfetti())

	case flowDoneMsg:
		return a.finishFlow(msg.outcome)

	case receiptExpireMsg:
		if msg.seq != a.receiptSeq || a.overlay != overlayReceipt {
			return a, nil
		}
		return a.dismissReceipt()

	case deleteDoneMsg:
		if msg.err != nil {
			return a, a.pushToast(errorText(msg.err))
		}
		if err := a.state.SetPendingToast(GoalRemovedToast); err != nil {
			a.log.Warn("persisting pending toast", zap.Error(err))
		}
		delete(a.expanded, msg.index)
		a.pending.Clear(msg.index)
		return a, a.reload()

	case upiLinkMsg:
		// The server link only replaces the local code while the same modal is open.
		if a.mode != modeUPI || msg.err != nil || msg.uri == "" {
			return a, nil
		}
		if op, ok := a.pending.Get(msg.op.GoalIndex); !ok || op != msg.op {
			return a, nil
		}
		if code, err := a.qr.Render(msg.uri); err == nil && code != "" {
			a.upiURI, a.upiCode = msg.uri, code
		}
		return a, nil

	case toastExpireMsg:
		for i, t := range a.toasts {
			if t.id == msg.id {
				a.toasts = append(a.toasts[:i], a.toasts[i+1:]...)
				break
			}
		}
		return a, nil

	case confettiTickMsg:
		if a.confetti.Done() {
			a.confetti = nil
			return a, nil
		}
		a.confetti.Step()
		return a, confettiTickCmd()

	case spinner.TickMsg:
		if !a.loaded || a.overlay == overlayProcessing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		return a, tickCmd()
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.mode == modeAmount {
		var cmd tea.Cmd
		a.amountIn, cmd = a.amountIn.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch a.overlay {
	case overlayProcessing:
		return a, nil
	case overlayReceipt:
		switch key {
		case "enter", "esc", " ":
			return a.dismissReceipt()
		}
		return a, nil
	}

	switch a.mode {
	case modeAmount:
		return a.updateAmountInput(msg)
	case modeConfirm:
		return a.updateConfirm(key)
	case modeUPI:
		return a.updateUPI(key)
	case modeDelete:
		return a.updateDelete(key)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "t":
		name := theme.Toggle()
		a.spinner.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)
		if err := a.state.Set(store.KeyTheme, name); err != nil {
			a.log.Warn("persisting theme", zap.Error(err))
		}
		return a, nil
	case "r":
		return a, a.reload()
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	if a.activeTab != 0 || a.board == nil {
		return a, nil
	}

	goal := a.selectedGoal()
	switch key {
	case "j", "down":
		if a.cursor < len(a.board.Goals)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "enter", "h":
		if goal != nil {
			a.expanded[goal.Index] = !a.expanded[goal.Index]
		}
		return a, nil
	case "c":
		return a.openAmount(goal, false)
	case "u":
		if goal == nil {
			return a, nil
		}
		if op, ok := a.pending.Get(goal.Index); ok {
			return a.openUPI(op)
		}
		return a.openAmount(goal, true)
	case "x":
		if goal != nil {
			a.mode = modeDelete
		}
		return a, nil
	}

	if n := quickAmountIndex(key); n >= 0 && n < len(a.cfg.Payments.QuickAmounts) && goal != nil {
		op := payflow.Operation{GoalIndex: goal.Index, Amount: a.cfg.Payments.QuickAmounts[n], GoalName: goal.Name}
		return a.startFlow(op)
	}
	return a, nil
}

// quickAmountIndex maps "1".."9" to 0..8.
func quickAmountIndex(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1')
	}
	return -1
}

func (a App) openAmount(goal *model.Goal, upiNext bool) (tea.Model, tea.Cmd) {
	if goal == nil {
		return a, nil
	}
	a.mode = modeAmount
	a.upiNext = upiNext
	a.amountErr = ""
	a.amountIn.Reset()
	if op, ok := a.pending.Get(goal.Index); ok {
		a.amountIn.SetValue(fmt.Sprintf("%d", op.Amount))
		a.amountIn.CursorEnd()
	}
	return a, a.amountIn.Focus()
}

func (a App) updateAmountInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeBrowse
		a.amountIn.Blur()
		return a, nil
	case "enter":
		goal := a.selectedGoal()
		if goal == nil {
			a.mode = modeBrowse
			return a, nil
		}
		amount, err := payflow.ParseAmount(a.amountIn.Value())
		if err != nil {
			a.amountErr = invalidAmountMsg
			return a, a.pushToast(invalidAmountMsg)
		}
		a.amountIn.Blur()
		op := payflow.Operation{GoalIndex: goal.Index, Amount: amount, GoalName: goal.Name}
		a.pending.Set(op)
		if a.upiNext {
			return a.openUPI(op)
		}
		a.mode = modeConfirm
		return a, nil
	}

	var cmd tea.Cmd
	a.amountIn, cmd = a.amountIn.Update(msg)
	a.amountErr = ""
	return a, cmd
}

func (a App) updateConfirm(key string) (tea.Model, tea.Cmd) {
	goal := a.selectedGoal()
	switch key {
	case "y", "enter":
		if goal == nil {
			a.mode = modeBrowse
			return a, nil
		}
		op, ok := a.pending.Get(goal.Index)
		a.mode = modeBrowse
		if !ok {
			return a, nil
		}
		return a.startFlow(op)
	case "u":
		if goal != nil {
			if op, ok := a.pending.Get(goal.Index); ok {
				return a.openUPI(op)
			}
		}
	case "n", "esc":
		if goal != nil {
			a.pending.Clear(goal.Index)
		}
		a.mode = modeBrowse
	}
	return a, nil
}

func (a App) openUPI(op payflow.Operation) (tea.Model, tea.Cmd) {
	a.mode = modeUPI
	a.upiURI = upi.URI(a.cfg.Payments.UPIPayee, a.cfg.Payments.UPIPayeeName, op.Amount)
	qr := a.qr
	if t, ok := qr.(upi.Terminal); ok {
		t.Inverse = theme.Active.Name == theme.NameDark
		qr = t
	}
	code, err := qr.Render(a.upiURI)
	if err != nil {
		a.log.Warn("rendering UPI code", zap.Error(err))
		code = ""
	}
	a.upiCode = code
	return a, upiLinkCmd(a.backend, op)
}

func (a App) updateUPI(key string) (tea.Model, tea.Cmd) {
	goal := a.selectedGoal()
	switch key {
	case "y", "enter":
		a.mode = modeBrowse
		if goal == nil {
			return a, nil
		}
		op, ok := a.pending.Get(goal.Index)
		if !ok {
			return a, nil
		}
		return a.startFlow(op)
	case "n", "esc":
		if goal != nil {
			a.pending.Clear(goal.Index)
		}
		a.mode = modeBrowse
	}
	return a, nil
}

func (a App) updateDelete(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y":
		a.mode = modeBrowse
		if goal := a.selectedGoal(); goal != nil {
			return a, deleteGoalCmd(a.backend, goal.Index)
		}
	case "n", "esc", "enter":
		a.mode = modeBrowse
	}
	return a, nil
}

// startFlow launches a payment flow unless one is already on screen.
func (a App) startFlow(op payflow.Operation) (tea.Model, tea.Cmd) {
	if a.flowActive || a.overlay != overlayNone {
		return a, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelFlow = cancel
	a.flowActive = true
	a.flowOp = op
	a.dismissDue = false
	a.highlight = -1
	return a, runFlowCmd(ctx, a.ctrl, op, a.flowSub)
}

func (a App) finishFlow(out payflow.Outcome) (tea.Model, tea.Cmd) {
	a.flowActive = false
	if a.cancelFlow != nil {
		a.cancelFlow()
		a.cancelFlow = nil
	}

	if errors.Is(out.Err, payflow.ErrBusy) {
		// The previous result still owns the overlay; leave it alone.
		return a, a.pushToast(out.Message)
	}

	var cmds []tea.Cmd
	switch out.State {
	case payflow.Success:
		a.pending.Clear(out.Op.GoalIndex)
		cmds = append(cmds, loadReceiptsCmd(a.state))
		if a.dismissDue {
			m, cmd := a.dismissReceipt()
			return m, tea.Batch(append(cmds, cmd)...)
		}
	case payflow.Failed:
		// Failed flows close at once; the pending op stays for a retry.
		a.ctrl.Dismiss()
		a.overlay = overlayNone
	case payflow.Idle:
		// Cancellation only happens when the program exits.
		if errors.Is(out.Err, context.Canceled) {
			a.pending.Clear(out.Op.GoalIndex)
		} else if out.Message != "" {
			cmds = append(cmds, a.pushToast(out.Message))
		}
	}
	return a, tea.Batch(cmds...)
}

func (a App) dismissReceipt() (tea.Model, tea.Cmd) {
	if a.flowActive {
		// Dismissal must wait until the flow has armed any reload.
		a.dismissDue = true
		return a, nil
	}
	a.overlay = overlayNone
	a.dismissDue = false
	a.highlight = -1
	if a.ctrl.Dismiss() {
		return a, a.reload()
	}
	return a, nil
}

func (a *App) reload() tea.Cmd {
	if a.reloading {
		return nil
	}
	a.reloading = true
	return loadBoardCmd(a.backend)
}

// consumeMarkers shows the one-shot messages left for the next load.
func (a *App) consumeMarkers() tea.Cmd {
	var cmds []tea.Cmd
	if name, ok, err := a.state.Take(store.KeyJustCompleted); err != nil {
		a.log.Warn("reading completion marker", zap.Error(err))
	} else if ok {
		cmds = append(cmds, a.startConfetti(), a.pushToast(completedToast(name)))
	}
	if text, ok, err := a.state.Take(store.KeyPendingToast); err != nil {
		a.log.Warn("reading pending toast", zap.Error(err))
	} else if ok && text != "" {
		cmds = append(cmds, a.pushToast(text))
	}
	return tea.Batch(cmds...)
}

func completedToast(name string) string {
	if name == "" {
		return "🎉 Goal completed!"
	}
	return fmt.Sprintf("🎉 Congratulations! You completed \"%s\"!", name)
}

func (a *App) pushToast(text string) tea.Cmd {
	a.toastSeq++
	id := a.toastSeq
	a.toasts = append(a.toasts, toast{id: id, text: text})
	return tea.Tick(components.ToastDuration, func(time.Time) tea.Msg { return toastExpireMsg{id: id} })
}

func (a *App) startConfetti() tea.Cmd {
	a.confetti = components.NewConfetti(max(20, a.contentWidth()), confettiHeight, a.rng)
	return confettiTickCmd()
}

func (a App) receiptTimeout() time.Duration {
	secs := a.cfg.Payments.ReceiptTimeoutSec
	if secs <= 0 {
		secs = config.DefaultConfig().Payments.ReceiptTimeoutSec
	}
	return time.Duration(secs) * time.Second
}

func (a App) selectedGoal() *model.Goal {
	if a.board == nil || a.cursor < 0 || a.cursor >= len(a.board.Goals) {
		return nil
	}
	return &a.board.Goals[a.cursor]
}

func (a *App) clampCursor() {
	if a.board == nil || len(a.board.Goals) == 0 {
		a.cursor = 0
		return
	}
	a.cursor = max(0, min(a.cursor, len(a.board.Goals)-1))
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			a.needSetup, a.setupForm = false, nil
			return a, a.pushToast("Could not save config: " + err.Error())
		}
		a.needSetup, a.setupForm = false, nil
		if a.connect != nil {
			be, err := a.connect(a.cfg.Server.BaseURL)
			if err != nil {
				return a, a.pushToast(err.Error())
			}
			a.backend = be
			a.ctrl = payflow.New(be, a.flowOpts...)
		}
		return a, a.reload()
	case huh.StateAborted:
		a.needSetup, a.setupForm = false, nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// errorText turns an API error into user-facing text.
func errorText(err error) string {
	var se *api.ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	return payflow.NetworkErrorMessage
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  smartsave needs at least %d columns.\n",
		a.width, minTerminalWidth)
	h := max(5, a.height)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ SmartSave Hub"))
	b.WriteString(subtitleStyle.Render(" · micro-savings"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading your goals..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	quick := make([]string, 0, len(a.cfg.Payments.QuickAmounts))
	for _, amt := range a.cfg.Payments.QuickAmounts {
		quick = append(quick, fmt.Sprintf("₹%d", amt))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"j k", "Select goal"},
			{"tab", "Switch Goals / Receipts"},
			{"enter h", "Toggle transaction history"},
		}},
		{"Saving", []struct{ key, desc string }{
			{fmt.Sprintf("1-%d", max(1, len(quick))), "Quick add " + strings.Join(quick, " / ")},
			{"c", "Add a custom amount"},
			{"u", "Pay by UPI QR"},
			{"x", "Delete goal"},
		}},
		{"General", []struct{ key, desc string }{
			{"t", "Toggle light / dark"},
			{"r", "Reload goals"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.statusInfo())

	contentH := max(minContentHeight, a.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch {
	case a.overlay != overlayNone:
		content = a.renderOverlay(cw)
	case a.mode != modeBrowse:
		content = a.renderModal(cw)
	case a.activeTab == 1:
		content = a.renderReceiptsTab(cw)
	default:
		content = a.renderGoalsTab(cw, contentH)
	}

	if a.confetti != nil && !a.confetti.Done() {
		content = a.confetti.View() + "\n" + content
	}
	if len(a.toasts) > 0 {
		content = a.renderToasts(cw) + "\n" + content
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) renderToasts(w int) string {
	lines := make([]string, 0, len(a.toasts))
	for _, t := range a.toasts {
		lines = append(lines, components.RenderToast(t.text, w))
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, strings.Join(lines, "\n"))
}

func (a App) statusHints() string {
	switch {
	case a.overlay == overlayProcessing:
		return "processing…"
	case a.overlay == overlayReceipt:
		return "[enter]close"
	case a.mode == modeAmount:
		return "[enter]continue  [esc]cancel"
	case a.mode != modeBrowse:
		return "[y]es  [n]o"
	}
	return "[?]help  [t]heme  [r]eload  [q]uit"
}

func (a App) statusInfo() string {
	var parts []string
	if a.reloading {
		parts = append(parts, "reloading…")
	}
	if a.board != nil && a.board.Streak > 0 {
		parts = append(parts, fmt.Sprintf("🔥 %d", a.board.Streak))
	}
	if c, ok := a.backend.(interface{ BaseURL() string }); ok {
		parts = append(parts, strings.TrimPrefix(strings.TrimPrefix(c.BaseURL(), "http://"), "https://"))
	}
	return strings.Join(parts, " · ")
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func confettiTickCmd() tea.Cmd {
	return tea.Tick(60*time.Millisecond, func(time.Time) tea.Msg {
		return confettiTickMsg{}
	})
}

func loadBoardCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		board, err := b.FetchBoard(ctx)
		return boardLoadedMsg{board: board, err: err}
	}
}

func loadReceiptsCmd(s LocalState) tea.Cmd {
	return func() tea.Msg {
		rs, err := s.ListReceipts(receiptLimit)
		if err != nil {
			logging.L().Warn("listing receipts", zap.Error(err))
		}
		return receiptsLoadedMsg{receipts: rs}
	}
}

func deleteGoalCmd(b Backend, index int) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{index: index, err: b.DeleteGoal(context.Background(), index)}
	}
}

func upiLinkCmd(b Backend, op payflow.Operation) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		uri, err := b.UPILink(ctx, op.GoalIndex, op.Amount)
		return upiLinkMsg{op: op, uri: uri, err: err}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
