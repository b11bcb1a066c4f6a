// Package wizard is the interactive six-step garment design flow.
package wizard

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/tailor/internal/catalog"
	"github.com/mark3labs/tailor/internal/credential"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/mark3labs/tailor/internal/journal"
	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/session"
	"github.com/mark3labs/tailor/internal/tui/theme"
)

// HistorySource loads the generation history of the running session.
type HistorySource interface {
	History(ctx context.Context) (*journal.History, error)
}

// Deps are the collaborators of the wizard. Prompts and History are
// optional.
type Deps struct {
	Ctx        context.Context
	Catalog    *catalog.Catalog
	Generator  session.Generator
	Prompts    <-chan credential.PromptRequest
	History    HistorySource
	Currency   string
	ServiceFee float64
}

// generationDoneMsg carries the outcome of a background generation.
type generationDoneMsg struct {
	ticket session.Ticket
	result design.Result
	err    error
}

// promptMsg is a credential request raised by a running generation.
type promptMsg struct {
	req credential.PromptRequest
}

// historyMsg carries a freshly loaded history.
type historyMsg struct {
	history *journal.History
	err     error
}

// Model is the Bubbletea model of the design wizard.
type Model struct {
	deps Deps
	ctrl *session.Controller

	width  int
	height int

	fabrics      *OptionList
	styles       *OptionList
	sizes        *OptionList
	fits         *OptionList
	measurements *MeasurementsStep
	spinner      spinner.Model

	modal       *CredentialModal
	showHistory bool
	history     *journal.History
	historyErr  error
}

// New creates the wizard at step 1.
func New(deps Deps) *Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	m := &Model{
		deps:    deps,
		ctrl:    session.New(),
		width:   80,
		height:  24,
		spinner: s,
	}
	m.resetSteps()
	return m
}

// resetSteps rebuilds the per-step widgets from the controller state.
func (m *Model) resetSteps() {
	var fabrics, styles, sizes, fits []option
	for _, f := range m.deps.Catalog.Fabrics() {
		fabrics = append(fabrics, option{Label: f.DisplayName, Detail: f.ID})
	}
	for _, st := range m.deps.Catalog.Styles() {
		styles = append(styles, option{Label: st.DisplayName, Detail: st.ID})
	}
	for _, sz := range design.Sizes {
		sizes = append(sizes, option{Label: string(sz)})
	}
	for _, f := range design.Fits {
		fits = append(fits, option{Label: f.Label(), Detail: f.Description()})
	}
	m.fabrics = NewOptionList(fabrics)
	m.styles = NewOptionList(styles)
	m.sizes = NewOptionList(sizes)
	m.fits = NewOptionList(fits)
	m.measurements = NewMeasurementsStep(m.ctrl.Session().Selection.Measurements)
}

// Session exposes the controller state for callers that embed the wizard.
func (m *Model) Session() session.State {
	return m.ctrl.Session()
}

// Init starts listening for credential prompts.
func (m *Model) Init() tea.Cmd {
	return m.waitForPrompt()
}

func (m *Model) waitForPrompt() tea.Cmd {
	ch := m.deps.Prompts
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return promptMsg{req: req}
	}
}

func (m *Model) loadHistory() tea.Cmd {
	src, ctx := m.deps.History, m.deps.Ctx
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		h, err := src.History(ctx)
		return historyMsg{history: h, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case promptMsg:
		if m.modal != nil {
			m.modal.Decline()
		}
		modal, cmd := NewCredentialModal(msg.req)
		m.modal = modal
		m.measurements.Blur()
		return m, cmd

	case generationDoneMsg:
		m.ctrl.FinishGeneration(msg.ticket, msg.result, msg.err)
		if m.modal != nil && !m.ctrl.Session().Generating {
			// The generation gave up waiting for an answer.
			m.modal.Decline()
			m.modal = nil
			return m, tea.Batch(m.loadHistory(), m.waitForPrompt())
		}
		return m, m.loadHistory()

	case historyMsg:
		m.history, m.historyErr = msg.history, msg.err
		if msg.err != nil {
			logger.Warn("Failed to load generation history: %v", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Session().Generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.modal != nil {
			m.modal.Decline()
		}
		return m, tea.Quit
	}

	if m.modal != nil {
		done, cmd := m.modal.Update(msg)
		if !done {
			return m, cmd
		}
		m.modal = nil
		return m, tea.Batch(m.waitForPrompt(), m.focusStep())
	}

	if m.showHistory {
		switch msg.String() {
		case "h", "esc", "q":
			m.showHistory = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+r":
		return m, m.restart()
	case "tab":
		return m, m.next()
	case "shift+tab", "esc":
		return m, m.back()
	}

	switch m.ctrl.Step() {
	case session.StepFabric:
		return m, m.handleList(msg, m.fabrics, m.chooseFabric)
	case session.StepStyle:
		return m, m.handleList(msg, m.styles, m.chooseStyle)
	case session.StepSize:
		return m, m.handleList(msg, m.sizes, m.chooseSize)
	case session.StepMeasurements:
		return m, m.handleMeasurements(msg)
	case session.StepFit:
		return m, m.handleList(msg, m.fits, m.chooseFit)
	case session.StepReview:
		return m, m.handleReview(msg)
	}
	return m, nil
}

func (m *Model) handleList(msg tea.KeyPressMsg, list *OptionList, choose func(int)) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		list.Move(-1)
	case "down", "j":
		list.Move(1)
	case "space":
		choose(list.Cursor())
	case "enter":
		choose(list.Cursor())
		return m.next()
	case "q":
		return tea.Quit
	case "h":
		return m.openHistory()
	}
	return nil
}

func (m *Model) chooseFabric(i int) {
	if items := m.deps.Catalog.Fabrics(); i >= 0 && i < len(items) {
		m.ctrl.SelectFabric(items[i])
	}
}

func (m *Model) chooseStyle(i int) {
	if items := m.deps.Catalog.Styles(); i >= 0 && i < len(items) {
		m.ctrl.SelectStyle(items[i])
	}
}

func (m *Model) chooseSize(i int) {
	if i >= 0 && i < len(design.Sizes) {
		m.ctrl.SelectSize(design.Sizes[i])
	}
}

func (m *Model) chooseFit(i int) {
	if i >= 0 && i < len(design.Fits) {
		m.ctrl.SelectFit(design.Fits[i])
	}
}

func (m *Model) handleMeasurements(msg tea.KeyPressMsg) tea.Cmd {
	step := m.measurements
	switch msg.String() {
	case "up":
		return step.MoveFocus(-1)
	case "down":
		return step.MoveFocus(1)
	case "enter":
		return m.next()
	case "space", "left", "right":
		if step.Focused() == design.FieldGender {
			step.ToggleGender()
			m.ctrl.SetGender(step.Gender())
			return nil
		}
	}
	if step.Focused() == design.FieldGender {
		return nil
	}

	cmd := step.Update(msg)
	m.ctrl.UpdateMeasurement(design.FieldBust, step.Value(design.FieldBust))
	m.ctrl.UpdateMeasurement(design.FieldHips, step.Value(design.FieldHips))
	return cmd
}

func (m *Model) handleReview(msg tea.KeyPressMsg) tea.Cmd {
	state := m.ctrl.Session()
	switch msg.String() {
	case "enter", "g":
		if state.Generating {
			return nil
		}
		if state.LastResult != nil {
			return m.restart()
		}
		return m.generate()
	case "n":
		if state.LastResult != nil && !state.Generating {
			return m.restart()
		}
	case "h":
		return m.openHistory()
	case "q":
		if !state.Generating {
			return tea.Quit
		}
	}
	return nil
}

func (m *Model) openHistory() tea.Cmd {
	if m.deps.History == nil {
		return nil
	}
	m.showHistory = true
	return m.loadHistory()
}

// next advances when the current step is complete.
func (m *Model) next() tea.Cmd {
	if !m.ctrl.Advance() {
		return nil
	}
	return m.focusStep()
}

// back retreats unless a generation is running.
func (m *Model) back() tea.Cmd {
	if m.ctrl.Session().Generating || !m.ctrl.Retreat() {
		return nil
	}
	return m.focusStep()
}

// restart discards the design. A generation still in flight is dropped
// when it completes.
func (m *Model) restart() tea.Cmd {
	m.ctrl.Reset()
	m.resetSteps()
	return nil
}

// focusStep moves keyboard focus to the widgets of the current step.
func (m *Model) focusStep() tea.Cmd {
	sel := m.ctrl.Session().Selection
	switch m.ctrl.Step() {
	case session.StepMeasurements:
		return m.measurements.Focus()
	case session.StepFit:
		if i := indexOf(design.Fits, sel.Fit); i >= 0 {
			m.fits.SetCursor(i)
		}
	}
	m.measurements.Blur()
	return nil
}

// generate starts a background generation for the current selection.
func (m *Model) generate() tea.Cmd {
	ticket, err := m.ctrl.StartGeneration()
	if err != nil {
		logger.Debug("Generate ignored: %v", err)
		return nil
	}

	gen, ctx := m.deps.Generator, m.deps.Ctx
	run := func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Generation panicked: %v", r)
				msg = generationDoneMsg{ticket: ticket, err: fmt.Errorf("%w: generator panic: %v", generation.ErrGenerationFailed, r)}
			}
		}()
		result, err := gen.Generate(ctx, ticket.Selection)
		return generationDoneMsg{ticket: ticket, result: result, err: err}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return -1
}

func indexOfItem(items []design.CatalogItem, item *design.CatalogItem) int {
	if item == nil {
		return -1
	}
	for i, it := range items {
		if it.ID == item.ID {
			return i
		}
	}
	return -1
}

// View renders the wizard.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(m.render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgBase)
	return view
}

// render composes the full screen as a string.
func (m *Model) render() string {
	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.View())
	}
	if m.showHistory {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHistory())
	}

	content := strings.Join([]string{
		m.renderHeader(),
		"",
		m.renderStep(),
	}, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) modalWidth() int {
	return max(60, min(m.width-10, 100))
}

func (m *Model) renderHeader() string {
	t := theme.Current()
	s := t.S()
	state := m.ctrl.Session()

	steps := make([]string, 0, len(session.Steps()))
	for _, step := range session.Steps() {
		label := fmt.Sprintf("%d %s", int(step), step.Title())
		switch {
		case step == state.Step:
			steps = append(steps, s.StepCurrent.Render(label))
		case step < state.Step:
			steps = append(steps, s.StepDone.Render(label))
		default:
			steps = append(steps, s.StepTodo.Render(label))
		}
	}

	logo := theme.ApplyGradient("✂ tailor", t.Primary, t.Tertiary, true)
	return logo + "  " + strings.Join(steps, s.Muted.Render(" › ")) + "  " + s.HeaderHint.Render("ctrl+r restart")
}

func (m *Model) renderStep() string {
	s := theme.Current().S()
	state := m.ctrl.Session()
	width := m.modalWidth()
	inner := width - 6
	sel := state.Selection

	var body, title string
	var hints []string
	switch state.Step {
	case session.StepFabric:
		title = "Choose a fabric"
		body = m.fabrics.View(indexOfItem(m.deps.Catalog.Fabrics(), sel.Fabric), inner)
		hints = []string{"↑↓", "navigate", "enter", "choose", "tab", "next"}
	case session.StepStyle:
		title = "Choose a garment style"
		body = m.styles.View(indexOfItem(m.deps.Catalog.Styles(), sel.Style), inner)
		hints = []string{"↑↓", "navigate", "enter", "choose", "esc", "back"}
	case session.StepSize:
		title = "Choose a standard size"
		body = m.sizes.View(indexOf(design.Sizes, sel.Size), inner)
		hints = []string{"↑↓", "navigate", "enter", "choose", "esc", "back"}
	case session.StepMeasurements:
		title = "Enter your measurements"
		body = m.measurements.View()
		hints = []string{"↑↓", "field", "space", "body form", "enter", "next"}
	case session.StepFit:
		title = "Choose a fit"
		body = m.fits.View(indexOf(design.Fits, sel.Fit), inner)
		hints = []string{"↑↓", "navigate", "enter", "choose", "esc", "back"}
	case session.StepReview:
		title, body, hints = m.renderReview(state, inner)
	}
	if m.deps.History != nil && !state.Generating {
		hints = append(hints, "h", "history")
	}

	buttons := m.renderButtons(state, width)
	content := strings.Join([]string{
		s.ModalTitle.Render(fmt.Sprintf("Step %d of %d: %s", int(state.Step), int(session.LastStep), title)),
		"",
		body,
		"",
		buttons,
		"",
		renderHintBar(hints...),
	}, "\n")
	return s.ModalContainer.Width(width).Render(content)
}

func (m *Model) renderReview(state session.State, inner int) (string, string, []string) {
	s := theme.Current().S()

	if state.LastResult != nil {
		body := renderMarkdown(resultMarkdown(*state.LastResult), inner) + "\n\n" +
			priceBreakdown(state.LastResult.Price, m.deps.ServiceFee, m.deps.Currency)
		return "Your design", body, []string{"enter", "design another", "q", "quit"}
	}

	body := renderMarkdown(summaryMarkdown(state.Selection), inner)
	switch {
	case state.Generating:
		body += "\n\n" + m.spinner.View() + " Generating front, side and back views..."
		return "Generating", body, []string{"ctrl+r", "restart"}
	case state.LastError != "":
		body += "\n\n" + s.Error.Render(state.LastError)
	}
	return "Review and generate", body, []string{"enter", "generate", "esc", "back"}
}

// renderButtons shows Back and Next. Back is disabled on the first step and
// while generating; the last step has no Next.
func (m *Model) renderButtons(state session.State, width int) string {
	nextLabel := "Next →"
	if state.Step == session.LastStep {
		nextLabel = ""
	}
	backEnabled := m.ctrl.CanRetreat() && !state.Generating
	bar := NewButtonBar(CreateBackNextButtons(backEnabled, m.ctrl.CanAdvance(), nextLabel))
	bar.SetWidth(width - 6)
	return bar.Render()
}

func (m *Model) renderHistory() string {
	s := theme.Current().S()
	var body string
	switch {
	case m.historyErr != nil:
		body = s.Error.Render("Could not load history.")
	default:
		body = historyView(m.history, m.deps.Currency)
	}

	content := strings.Join([]string{
		s.ModalTitle.Render("Generation history"),
		"",
		body,
		"",
		renderHintBar("h", "close"),
	}, "\n")
	return s.ModalContainer.Width(m.modalWidth()).Render(content)
}
