package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/wizard"
)

// wizardKeyMap holds the global bindings that work on every step,
// independent of the focused form field.
type wizardKeyMap struct {
	Quit key.Binding
	Prev key.Binding
	Next key.Binding
}

var wizardKeys = wizardKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "save and quit"),
	),
	Prev: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "back"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "skip ahead"),
	),
}

// syncTickMsg refreshes the sync indicator while a save is pending.
type syncTickMsg time.Time

func syncTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return syncTickMsg(t)
	})
}

// wizardModel is the bubbletea model for the step-by-step planner.
// One huh form per step; completing a form commits that step's section
// and advances.
type wizardModel struct {
	app   *App
	coord *wizard.Coordinator

	buf      *stepBuffer
	form     *huh.Form
	formStep int

	confirm    *huh.Form
	confirming bool
	confirmNew bool

	width    int
	message  string
	quitting bool
}

func newWizardModel(app *App, coord *wizard.Coordinator) *wizardModel {
	m := &wizardModel{app: app, coord: coord}
	m.rebuildForm()
	return m
}

func (m *wizardModel) rebuildForm() {
	m.buf = bufferFrom(m.coord.Data())
	m.formStep = m.coord.Step()
	m.form = stepForm(m.formStep, m.buf)
}

// commit writes the current step's buffer back through the coordinator.
// The launch step has no editable section.
func (m *wizardModel) commit() {
	step := m.formStep
	if step >= 10 {
		return
	}
	m.coord.UpdateData(func(d *domain.WizardData) {
		m.buf.apply(d, step)
	})
}

func (m *wizardModel) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), syncTick())
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case syncTickMsg:
		return m, syncTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, wizardKeys.Quit):
			m.commit()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, wizardKeys.Prev):
			m.commit()
			m.coord.PreviousStep()
			m.rebuildForm()
			return m, m.form.Init()
		case key.Matches(msg, wizardKeys.Next):
			m.commit()
			m.coord.NextStep()
			m.rebuildForm()
			return m, m.form.Init()
		}
	}

	if m.confirming {
		return m.updateConfirm(msg)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.stepCompleted(cmd)
	}
	return m, cmd
}

func (m *wizardModel) stepCompleted(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.commit()

	if m.formStep < domain.TotalSteps {
		m.coord.NextStep()
		m.rebuildForm()
		return m, tea.Batch(cmd, m.form.Init())
	}

	switch m.buf.launchChoice {
	case launchExport:
		path, err := exportPlanFile(m.coord, "")
		if err != nil {
			m.message = styleRed.Render("Export failed: " + err.Error())
		} else {
			m.message = styleGreen.Render("Plan written to " + path)
		}
		m.rebuildForm()
		return m, tea.Batch(cmd, m.form.Init())

	case launchNewPlan:
		m.confirming = true
		m.confirmNew = false
		m.confirm = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Start a new plan?").
				Description("Your current plan stays saved and can be reopened with: planwizard wizard "+m.coord.PlanID()).
				Affirmative("Start new").
				Negative("Keep editing").
				Value(&m.confirmNew),
		)).WithTheme(wizardHuhTheme()).WithShowHelp(false)
		return m, tea.Batch(cmd, m.confirm.Init())

	default:
		m.quitting = true
		return m, tea.Batch(cmd, tea.Quit)
	}
}

func (m *wizardModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}
	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	m.confirming = false
	if m.confirmNew {
		m.coord.StartNewPlan()
		m.message = styleGreen.Render("Started a fresh plan.")
	}
	m.rebuildForm()
	return m, tea.Batch(cmd, m.form.Init())
}

func (m *wizardModel) View() string {
	if m.quitting {
		return styleDim.Render("Plan saved. See you next time.") + "\n"
	}

	step := m.formStep
	meta := stepTitles[step]

	var b strings.Builder
	b.WriteString(styleHeader.Render("planwizard") + "\n\n")
	b.WriteString(m.stepIndicator() + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		styleHeader.Render(fmt.Sprintf("Step %d of %d — %s", step, domain.TotalSteps, meta.title)),
		m.syncIndicator()))
	b.WriteString(styleDim.Render(meta.desc) + "\n\n")

	if m.message != "" {
		b.WriteString(m.message + "\n\n")
	}

	if m.confirming {
		b.WriteString(m.confirm.View())
	} else {
		b.WriteString(m.form.View())
	}

	hints := []string{"enter continue"}
	for _, bind := range []key.Binding{wizardKeys.Prev, wizardKeys.Next, wizardKeys.Quit} {
		hints = append(hints, bind.Help().Key+" "+bind.Help().Desc)
	}
	b.WriteString("\n" + styleDim.Render(strings.Join(hints, " · ")))
	return b.String()
}

// stepIndicator renders the ten-step progress dots.
func (m *wizardModel) stepIndicator() string {
	var dots []string
	for i := 1; i <= domain.TotalSteps; i++ {
		switch {
		case i == m.formStep:
			dots = append(dots, styleHeader.Render("●"))
		case i < m.formStep:
			dots = append(dots, styleGreen.Render("●"))
		default:
			dots = append(dots, styleDim.Render("○"))
		}
	}
	pct := (m.formStep * 100) / domain.TotalSteps
	return strings.Join(dots, " ") + styleDim.Render(fmt.Sprintf("  %d%%", pct))
}

// syncIndicator mirrors the web client's passive cloud status: syncing is
// never worth interrupting the user over.
func (m *wizardModel) syncIndicator() string {
	st := m.coord.SyncStatus()
	switch {
	case !st.Enabled:
		return styleDim.Render("· local only")
	case st.Saving:
		return styleYellow.Render("· saving…")
	case st.Err != "":
		return styleRed.Render("· offline — saved locally")
	case m.coord.RemoteUnavailable():
		return styleRed.Render("· offline — using local copy")
	default:
		return styleGreen.Render("· saved")
	}
}
