package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimiland/blockhtml/pkg/config"
	"github.com/jimiland/blockhtml/pkg/page"
	"github.com/jimiland/blockhtml/pkg/render"
	"github.com/urfave/cli/v3"
)

// RenderCommand creates the render command
func RenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a page dump to an HTML fragment",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the fragment to `FILE` instead of standard output",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print a rendering summary to standard error",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			input, err := inputArg(c)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			res, err := renderPage(cfg, input, c.String("output"))
			if err != nil {
				return err
			}
			if c.Bool("stats") {
				fmt.Fprintln(os.Stderr, formatRenderStats(res, cfg.Page.WordsPerMinute))
			}
			return nil
		},
	}
}

// renderPage renders the document at input and writes the fragment to
// output, or to standard output when output is empty or "-".
func renderPage(cfg *config.Config, input, output string) (render.Result, error) {
	doc, err := readDocument(input)
	if err != nil {
		return render.Result{}, err
	}

	res := render.NewService(cfg.RenderOptions()).Render(doc.Blocks)

	if output == "" || output == "-" {
		return res, writeFragment(os.Stdout, res.HTML)
	}

	f, err := os.Create(output)
	if err != nil {
		return res, fmt.Errorf("creating output file: %w", err)
	}
	if err := writeFragment(f, res.HTML); err != nil {
		f.Close()
		return res, err
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("closing output file: %w", err)
	}
	return res, nil
}

func writeFragment(w io.Writer, fragment string) error {
	if _, err := io.WriteString(w, fragment+"\n"); err != nil {
		return fmt.Errorf("writing fragment: %w", err)
	}
	return nil
}

func formatRenderStats(res render.Result, wpm int) string {
	lines := []string{
		field("Rendered", formatNumber(res.Rendered)+" blocks"),
		field("Skipped", formatNumber(res.Skipped)+" blocks"),
		field("Links", formatNumber(len(res.Links))),
		field("Reading time", page.ReadingTime(res.HTML, wpm)),
	}
	return summaryStyle.Render(strings.Join(lines, "\n"))
}
