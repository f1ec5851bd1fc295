package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlorenz/asciigram/pkg/pipeline"
)

// directionCycle is the order the TUI steps through direction
// overrides; the empty string keeps whatever the source declares.
var directionCycle = []string{"", "TD", "LR", "BT", "RL"}

// newTuiCmd creates the tui command, an interactive preview with live
// charset and direction toggles.
func newTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui <file>",
		Short: "Preview a diagram interactively",
		Long: `Preview a flowchart source file in the terminal.

Keys:
  a      toggle between the Unicode and ASCII palettes
  d      cycle the flow direction (source, TD, LR, BT, RL)
  q      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTui(cmd.Context(), args[0])
		},
	}
}

func runTui(ctx context.Context, path string) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	// No cache: every toggle re-renders, and runs are cheap.
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	defer runner.Close()

	m := newPreviewModel(ctx, runner, path, source)
	_, err = tea.NewProgram(m).Run()
	return err
}

// previewModel is the bubbletea model for the live diagram preview.
type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	path   string
	source string

	ascii     bool
	dirIndex  int
	rendered  string
	renderErr error
}

func newPreviewModel(ctx context.Context, runner *pipeline.Runner, path, source string) *previewModel {
	m := &previewModel{
		ctx:    ctx,
		runner: runner,
		path:   path,
		source: source,
	}
	m.render()
	return m
}

// render runs the pipeline with the current toggles. Rendering is fast
// enough to run synchronously inside Update.
func (m *previewModel) render() {
	charset := pipeline.CharsetUnicode
	if m.ascii {
		charset = pipeline.CharsetASCII
	}

	result, err := m.runner.Execute(m.ctx, pipeline.Options{
		Source:    m.source,
		Charset:   charset,
		Direction: directionCycle[m.dirIndex],
		NoCache:   true,
	})
	if err != nil {
		m.renderErr = err
		return
	}
	m.renderErr = nil
	m.rendered = string(result.Output)
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "a":
			m.ascii = !m.ascii
			m.render()
		case "d":
			m.dirIndex = (m.dirIndex + 1) % len(directionCycle)
			m.render()
		}
	}
	return m, nil
}

func (m *previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.path))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("charset: %s  direction: %s",
		m.charsetName(), m.directionName())))
	b.WriteString("\n\n")

	if m.renderErr != nil {
		b.WriteString(styleIconError.Render(iconError))
		b.WriteString(" ")
		b.WriteString(m.renderErr.Error())
	} else if m.rendered == "" {
		b.WriteString(StyleDim.Render("(empty diagram)"))
	} else {
		b.WriteString(m.rendered)
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("a: charset  d: direction  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *previewModel) charsetName() string {
	if m.ascii {
		return pipeline.CharsetASCII
	}
	return pipeline.CharsetUnicode
}

func (m *previewModel) directionName() string {
	if d := directionCycle[m.dirIndex]; d != "" {
		return d
	}
	return "source"
}
