package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlorenz/asciigram/pkg/config"
	"github.com/mlorenz/asciigram/pkg/errors"
	"github.com/mlorenz/asciigram/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path ("" means stdout)
	format    string // output format: text, dot, svg, json
	ascii     bool   // restrict the text palette to seven-bit ASCII
	padding   int    // horizontal space inside node boxes, -1 means unset
	direction string // direction override: TD, BT, LR, RL
	noCache   bool   // skip the render cache
}

// newRenderCmd creates the render command. It reads flowchart source
// from a file argument or stdin and writes the rendered diagram to
// stdout or --output.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render flowchart source as a text diagram",
		Long: `Render Mermaid-style flowchart source as a text diagram.

Source is read from the file argument, or from stdin when the argument
is omitted or is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text (default), dot, svg, json")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "use the seven-bit ASCII palette")
	cmd.Flags().IntVar(&opts.padding, "padding", -1, "horizontal space inside node boxes (default from config)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "override the flow direction: TD, BT, LR, RL")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the render cache")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	source, err := readSource(input)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(newCache(ctx, cfg), newKeyer(cfg), logger)
	defer runner.Close()

	result, err := runner.Execute(ctx, pipelineOptions(cfg, source, opts))
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(result.Output)
		return err
	}

	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, result.Output, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing output")
	}

	printSuccess("Rendered diagram")
	printFile(opts.output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)
	return nil
}

// pipelineOptions merges config defaults with command-line flags; flags
// win.
func pipelineOptions(cfg config.Config, source string, opts *renderOpts) pipeline.Options {
	charset := cfg.Render.Charset
	if opts.ascii {
		charset = pipeline.CharsetASCII
	}

	padding := cfg.Render.Padding
	if opts.padding >= 0 {
		padding = opts.padding
	}

	direction := cfg.Render.Direction
	if opts.direction != "" {
		direction = opts.direction
	}

	return pipeline.Options{
		Source:    source,
		Format:    opts.format,
		Charset:   charset,
		Padding:   &padding,
		Direction: direction,
		NoCache:   opts.noCache,
	}
}

// readSource reads flowchart source from a file, or from stdin when
// path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "reading stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "reading %s", path)
	}

	return string(data), nil
}
