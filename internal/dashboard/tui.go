package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"
)

// Input field order in the terminal UI.
const (
	fieldFile = iota
	fieldEmails
	fieldIndustries
	fieldCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9AA5B1"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7785"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935"))
	cellStyle    = lipgloss.NewStyle().PaddingRight(2)
	fieldLabels  = [fieldCount]string{"Lead file (CSV/XLSX)", "Emails", "Industries"}
	messageStyle = map[string]lipgloss.Style{
		LevelInfo:  infoStyle,
		LevelWarn:  warnStyle,
		LevelError: errorStyle,
	}
)

// resultMsg carries the outcome of a controller operation back to Update.
type resultMsg struct {
	view   View
	report *Report
}

// Model is the bubbletea model of the terminal dashboard.
type Model struct {
	ctx      context.Context
	ctrl     *Controller
	session  *Session
	inputs   [fieldCount]textinput.Model
	focus    int
	view     View
	report   *Report
	busy     bool
	notice   string
	readFile func(string) ([]byte, error)
}

// NewModel returns the terminal dashboard with industries preselected.
func NewModel(ctx context.Context, ctrl *Controller, industries []string) Model {
	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		session:  NewSession(),
		readFile: os.ReadFile,
		view:     View{Placeholder: EmptyPlaceholder},
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 2048
		ti.Width = 60
		m.inputs[i] = ti
	}
	m.inputs[fieldFile].Placeholder = "path/to/leads.csv"
	m.inputs[fieldEmails].Placeholder = "a@example.com, b@example.com"
	m.inputs[fieldIndustries].SetValue(strings.Join(industries, ", "))
	m.inputs[fieldFile].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "ctrl+r":
			return m.start(false)
		case "ctrl+s":
			return m.start(true)
		}
	case resultMsg:
		m.busy = false
		m.view = msg.view
		m.report = msg.report
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// start copies the inputs into the session and runs the operation in a
// command so the UI stays responsive.
func (m Model) start(send bool) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.notice = ""
	if err := m.applyInputs(); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.busy = true

	ctx, ctrl, session := m.ctx, m.ctrl, m.session
	if send {
		return m, func() tea.Msg {
			report, view := ctrl.RefreshAndSend(ctx, session)
			return resultMsg{view: view, report: &report}
		}
	}
	return m, func() tea.Msg {
		return resultMsg{view: ctrl.RunSearch(ctx, session)}
	}
}

func (m *Model) applyInputs() error {
	in := Input{Emails: strings.TrimSpace(m.inputs[fieldEmails].Value())}

	if path := strings.TrimSpace(m.inputs[fieldFile].Value()); path != "" {
		data, err := m.readFile(path)
		if err != nil {
			return eris.Wrapf(err, "could not open %s", path)
		}
		in.FileName, in.File = filepath.Base(path), data
	}

	m.session.Input = in
	m.session.Industries = ParseIndustries(m.inputs[fieldIndustries].Value())
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Lead Outreach Dashboard"))
	sb.WriteString("\n\n")

	for i, in := range m.inputs {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		sb.WriteString(cursor + labelStyle.Render(fieldLabels[i]+": ") + in.View() + "\n")
	}
	sb.WriteString("\n")

	if m.busy {
		sb.WriteString(warnStyle.Render("Working...") + "\n\n")
	}
	if m.notice != "" {
		sb.WriteString(errorStyle.Render(m.notice) + "\n\n")
	}

	for _, msg := range m.view.Messages {
		style, ok := messageStyle[msg.Level]
		if !ok {
			style = infoStyle
		}
		sb.WriteString(style.Render(msg.Text) + "\n")
	}
	if len(m.view.Messages) > 0 {
		sb.WriteString("\n")
	}

	if m.report != nil {
		sb.WriteString(fmt.Sprintf("Run %s: %d sent, %d failed, %d skipped\n\n",
			m.report.RunID, m.report.Sent, m.report.Failed, m.report.Skipped))
	}

	if m.view.Empty() {
		sb.WriteString(m.view.Placeholder + "\n")
	} else {
		sb.WriteString(renderTable(m.view.Rows))
	}

	sb.WriteString("\n" + helpStyle.Render("tab: next field • ctrl+r: run search • ctrl+s: refresh leads and send emails • ctrl+c: quit"))
	return sb.String()
}

func renderTable(rows []Row) string {
	header := []string{"Name", "Email", "Industry", "Status", "Score"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Name, r.Email, r.Industry, r.Status, fmt.Sprint(r.Score)})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for i, h := range header {
		sb.WriteString(cellStyle.Width(widths[i] + 2).Render(headerStyle.Render(h)))
	}
	sb.WriteString("\n")
	for _, row := range cells {
		for i, c := range row {
			sb.WriteString(cellStyle.Width(widths[i] + 2).Render(c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RunTUI starts the terminal dashboard and blocks until the user quits or
// ctx is canceled.
func RunTUI(ctx context.Context, ctrl *Controller, industries []string) error {
	p := tea.NewProgram(NewModel(ctx, ctrl, industries), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return eris.Wrap(err, "dashboard: run terminal ui")
	}
	return nil
}
