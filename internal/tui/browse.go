package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/itinerary/internal/assistant"
	"github.com/jeanpaul/itinerary/internal/destination"
)

// Assistant is the part of the gateway the browser needs.
type Assistant interface {
	GenerateItinerary(ctx context.Context, d *destination.Destination) string
	GenerateBudgetTips(ctx context.Context, d *destination.Destination) string
}

type view int

const (
	viewList view = iota
	viewDetail
)

var PulseSpinner = spinner.Spinner{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    time.Second / 12,
}

type destItem struct {
	d *destination.Destination
}

func (i destItem) Title() string { return i.d.City + ", " + i.d.Country }
func (i destItem) Description() string {
	return fmt.Sprintf("%s to %s · %s · %s", i.d.StartDate, i.d.EndDate, destination.FormatMoney(i.d.Budget), i.d.ActivityList())
}
func (i destItem) FilterValue() string {
	return i.d.City + " " + i.d.Country + " " + i.d.ActivityList()
}

type replyMsg struct {
	city string
	kind assistant.Kind
	text string
}

// BrowseModel lists destinations and shows one at a time with optional
// assistant output underneath.
type BrowseModel struct {
	ctx      context.Context
	asst     Assistant
	theme    string
	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model
	view     view
	current  *destination.Destination
	waiting  bool
	reply    string
	width    int
	height   int
}

func NewBrowseModel(ctx context.Context, dests []*destination.Destination, asst Assistant, theme string) BrowseModel {
	items := make([]list.Item, len(dests))
	for i, d := range dests {
		items[i] = destItem{d: d}
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DarkGreen)

	l := list.New(items, d, 80, 20)
	l.Title = "Destinations"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("destination", "destinations")
	l.Styles.Title = StatusBarStyle

	sp := spinner.New()
	sp.Spinner = PulseSpinner
	sp.Style = SpinnerStyle

	return BrowseModel{
		ctx:      ctx,
		asst:     asst,
		theme:    theme,
		list:     l,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.refresh()
		return m, nil

	case replyMsg:
		if m.current == nil || !strings.EqualFold(m.current.City, msg.city) {
			return m, nil
		}
		m.waiting = false
		m.reply = fmt.Sprintf("## %s\n\n%s", titleFor(msg.kind), msg.text)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == viewDetail {
			return m.updateDetail(msg)
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "enter":
				if it, ok := m.list.SelectedItem().(destItem); ok {
					m.open(it.d)
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.view == viewList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m BrowseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		m.current = nil
		m.reply = ""
		m.waiting = false
		return m, nil
	case "p":
		return m.ask(assistant.KindItinerary)
	case "t":
		return m.ask(assistant.KindBudgetTips)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *BrowseModel) open(d *destination.Destination) {
	m.view = viewDetail
	m.current = d
	m.reply = ""
	m.waiting = false
	m.refresh()
	m.viewport.GotoTop()
}

func (m BrowseModel) ask(kind assistant.Kind) (tea.Model, tea.Cmd) {
	if m.asst == nil || m.waiting || m.current == nil {
		return m, nil
	}
	m.waiting = true
	m.reply = ""
	m.refresh()

	ctx, asst, d := m.ctx, m.asst, m.current.Clone()
	fetch := func() tea.Msg {
		var text string
		if kind == assistant.KindBudgetTips {
			text = asst.GenerateBudgetTips(ctx, d)
		} else {
			text = asst.GenerateItinerary(ctx, d)
		}
		return replyMsg{city: d.City, kind: kind, text: text}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

// refresh rebuilds the detail pane content.
func (m *BrowseModel) refresh() {
	if m.current == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(Card(m.current))
	sb.WriteString("\n\n")
	switch {
	case m.waiting:
		sb.WriteString(m.spinner.View() + " " + DimStyle.Render("asking the assistant..."))
	case m.reply != "":
		sb.WriteString(Markdown(m.reply, m.theme, max(m.width-4, 20)))
	}
	m.viewport.SetContent(sb.String())
}

func (m BrowseModel) View() string {
	if m.view == viewList {
		return m.list.View()
	}
	help := HelpStyle.Render("p: itinerary | t: budget tips | ↑/↓: scroll | esc: back | q: quit")
	return m.viewport.View() + "\n" + help
}

func titleFor(kind assistant.Kind) string {
	if kind == assistant.KindBudgetTips {
		return "Budget tips"
	}
	return "Suggested itinerary"
}

// Browse runs the browser full screen until the user quits.
func Browse(ctx context.Context, dests []*destination.Destination, asst Assistant, theme string) error {
	p := tea.NewProgram(NewBrowseModel(ctx, dests, asst, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
