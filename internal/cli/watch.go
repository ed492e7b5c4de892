package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackmover/pkg/input"
	"github.com/matzehuels/stackmover/pkg/mover"
	"github.com/matzehuels/stackmover/pkg/render"
	"github.com/matzehuels/stackmover/pkg/stack"
)

const (
	defaultWatchInterval = 400 * time.Millisecond
	// procedures shown before and after the current one
	watchContextBefore = 2
	watchContextAfter  = 4
)

var (
	watchCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	watchAppliedStyle = lipgloss.NewStyle().Foreground(colorDim)
	watchPendingStyle = lipgloss.NewStyle().Foreground(colorWhite)
	watchCrateStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	watchHeaderStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Command
// =============================================================================

type watchOpts struct {
	source   sourceFlags
	mode     string
	interval time.Duration
	play     bool
}

// watchCommand creates the watch command, an interactive step-through of
// the procedures.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{interval: defaultWatchInterval}

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Step through the procedures interactively",
		Long: `Open a terminal view of the stacks and step through the procedures one at
a time.

Keys: space/n step · p play/pause · e run to end · r restart · q quit`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == stdinArg {
				return fmt.Errorf("watch needs the terminal for input; pass a file instead of -")
			}
			return opts.source.args(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, args, &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "crane mode: sequential (9000) or batch (9001) (default from config)")
	cmd.Flags().DurationVar(&opts.interval, "interval", opts.interval, "delay between steps while playing")
	cmd.Flags().BoolVar(&opts.play, "play", false, "start playing immediately")

	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, args []string, opts *watchOpts) error {
	ctx := cmd.Context()
	if opts.mode == modeBoth {
		return fmt.Errorf("watch steps one crane at a time; pick sequential or batch")
	}
	modes, err := c.resolveModes(opts.mode, cmd.Flags().Changed("mode"))
	if err != nil {
		return err
	}
	raw, _, err := opts.source.read(cmd, args)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	p, err := runner.Parse(ctx, raw)
	if err != nil {
		return err
	}

	model, err := NewWatchModel(p, modes[0], opts.interval)
	if err != nil {
		return err
	}
	model.Playing = opts.play

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m := final.(WatchModel)
	switch {
	case m.engine.Err() != nil:
		return m.engine.Err()
	case m.engine.Done():
		answer, err := m.engine.Snapshot()
		if err != nil {
			return err
		}
		printAnswer(m.mode.String(), answer)
	default:
		printInfo("Stopped after %d of %d procedures", m.engine.Position(), len(m.procedures))
	}
	return nil
}

// =============================================================================
// WatchModel - Interactive step-through
// =============================================================================

type watchTickMsg time.Time

// WatchModel is the bubbletea model for stepping through a run.
type WatchModel struct {
	initial    *stack.Collection
	procedures []stack.Procedure
	mode       mover.Mode
	engine     *mover.Engine

	Playing  bool
	Interval time.Duration
}

// NewWatchModel creates a model over a private copy of the puzzle's stacks.
func NewWatchModel(p *input.Puzzle, mode mover.Mode, interval time.Duration) (WatchModel, error) {
	m := WatchModel{
		initial:    p.Stacks.Clone(),
		procedures: p.Procedures,
		mode:       mode,
		Interval:   interval,
	}
	if err := m.restart(); err != nil {
		return WatchModel{}, err
	}
	return m, nil
}

func (m *WatchModel) restart() error {
	e, err := mover.NewEngine(m.initial.Clone(), m.procedures, m.mode)
	if err != nil {
		return err
	}
	m.engine = e
	return nil
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.Interval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

// stopped reports whether stepping can make no further progress.
func (m WatchModel) stopped() bool {
	return m.engine.Done() || m.engine.Err() != nil
}

func (m WatchModel) Init() tea.Cmd {
	if m.Playing {
		return m.tick()
	}
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "n", "right", "l":
			m.Playing = false
			_ = m.engine.Step()
		case "e", "end":
			m.Playing = false
			_ = m.engine.Run()
		case "p":
			if m.stopped() {
				return m, nil
			}
			m.Playing = !m.Playing
			if m.Playing {
				return m, m.tick()
			}
		case "r":
			m.Playing = false
			_ = m.restart()
		}
	case watchTickMsg:
		if !m.Playing {
			return m, nil
		}
		_ = m.engine.Step()
		if m.stopped() {
			m.Playing = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Stackmover"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s crane · %d/%d applied", m.mode, m.engine.Position(), len(m.procedures))))
	b.WriteString("\n\n")

	b.WriteString(styleDrawing(render.Drawing(m.engine.Stacks())))
	b.WriteString("\n")

	b.WriteString(m.procedureTable())
	b.WriteString("\n\n")

	b.WriteString(styleKey.Render("tops"))
	b.WriteString(" ")
	b.WriteString(StyleAnswer.Render(topsPreview(m.engine.Stacks())))
	b.WriteString("\n")

	switch {
	case m.engine.Err() != nil:
		b.WriteString(StyleError.Render(iconError + " " + m.engine.Err().Error()))
		b.WriteString("\n")
	case m.engine.Done():
		b.WriteString(StyleSuccess.Render(iconSuccess + " all procedures applied"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := "paused"
	if m.Playing {
		status = "playing"
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("space step · p play/pause · e end · r restart · q quit  [%s]", status)))
	return b.String()
}

// procedureTable shows a window of procedures around the next one to apply.
func (m WatchModel) procedureTable() string {
	next := m.engine.Position()
	from := max(0, next-watchContextBefore)
	to := min(len(m.procedures), next+watchContextAfter+1)

	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		cursor := "  "
		if i == next {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, fmt.Sprintf("%d", i+1), m.procedures[i].String()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Procedure").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch idx := from + row; {
			case row == table.HeaderRow:
				return watchHeaderStyle
			case idx < next:
				return watchAppliedStyle
			case idx == next:
				return watchCurrentStyle
			default:
				return watchPendingStyle
			}
		})
	return t.Render()
}

// styleDrawing colours crates and dims the label row.
func styleDrawing(d string) string {
	lines := strings.Split(strings.TrimSuffix(d, "\n"), "\n")
	last := len(lines) - 1
	for i := range last {
		lines[i] = watchCrateStyle.Render(lines[i])
	}
	lines[last] = StyleDim.Render(lines[last])
	return strings.Join(lines, "\n") + "\n"
}

// topsPreview is the current top crate of every stack, with "_" for an empty
// stack.
func topsPreview(c *stack.Collection) string {
	var b strings.Builder
	for _, s := range c.Stacks() {
		top, ok := s.Peek()
		if !ok {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(rune(top))
	}
	return b.String()
}
