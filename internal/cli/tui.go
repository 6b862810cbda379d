package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Batch list styles.
var (
	batchPendingStyle = lipgloss.NewStyle().Foreground(colorDim)
	batchRunningStyle = lipgloss.NewStyle().Foreground(colorCyan)
	batchDoneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	batchFailedStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// Job states for the batch progress list.
const (
	jobPending = iota
	jobRunning
	jobDone
	jobFailed
)

// batchJob is one polygon's row in the progress list.
type batchJob struct {
	verts  int
	state  int
	rects  int
	cached bool
	err    error
}

// Messages sent by the batch worker goroutine.
type (
	jobStartMsg struct{ index int }
	jobDoneMsg  struct {
		index  int
		rects  int
		cached bool
		err    error
	}
	batchDoneMsg struct{}
)

// batchModel is the bubbletea model for batch partition progress.
type batchModel struct {
	jobs     []batchJob
	finished int
	aborted  bool
}

// newBatchModel creates the progress model for the given polygon sizes.
func newBatchModel(vertCounts []int) batchModel {
	jobs := make([]batchJob, len(vertCounts))
	for i, n := range vertCounts {
		jobs[i] = batchJob{verts: n}
	}
	return batchModel{jobs: jobs}
}

func (m batchModel) Init() tea.Cmd {
	return nil
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case jobStartMsg:
		m.jobs[msg.index].state = jobRunning
	case jobDoneMsg:
		job := &m.jobs[msg.index]
		job.rects = msg.rects
		job.cached = msg.cached
		job.err = msg.err
		job.state = jobDone
		if msg.err != nil {
			job.state = jobFailed
		}
		m.finished++
	case batchDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Partitioning polygons"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d done · q to abort", m.finished, len(m.jobs))))
	b.WriteString("\n\n")

	for i, job := range m.jobs {
		label := fmt.Sprintf("polygon %d (%d vertices)", i+1, job.verts)
		switch job.state {
		case jobPending:
			b.WriteString(batchPendingStyle.Render("  · " + label))
		case jobRunning:
			b.WriteString(batchRunningStyle.Render("  ▸ " + label))
		case jobDone:
			status := fmt.Sprintf("  %s %s %s %d rects", iconSuccess, label, iconArrow, job.rects)
			if job.cached {
				status += " (cached)"
			}
			b.WriteString(batchDoneStyle.Render(status))
		case jobFailed:
			b.WriteString(batchFailedStyle.Render(fmt.Sprintf("  %s %s: %v", iconError, label, job.err)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
