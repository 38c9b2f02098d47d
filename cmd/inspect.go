package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimiland/blockhtml/pkg/config"
	"github.com/jimiland/blockhtml/pkg/core"
	"github.com/jimiland/blockhtml/pkg/render"
	"github.com/urfave/cli/v3"
)

// InspectCommand creates the inspect command
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show page metadata, block counts and outbound links",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "blocks",
				Usage: "List every block with a one line summary",
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
			return inspectPage(os.Stdout, cfg, input, c.Bool("blocks"))
		},
	}
}

func inspectPage(w io.Writer, cfg *config.Config, input string, listBlocks bool) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}
	svc := render.NewService(cfg.RenderOptions())

	var links []string
	if doc.Title == "" {
		fmt.Fprintln(w, titleStyle.Render("(untitled)"))
		res := svc.Render(doc.Blocks)
		fmt.Fprintln(w, field("Blocks", fmt.Sprintf("%s rendered, %s skipped", formatNumber(res.Rendered), formatNumber(res.Skipped))))
		links = res.Links
	} else {
		article, err := cfg.Builder(svc).Build(doc)
		if err != nil {
			return fmt.Errorf("building article: %w", err)
		}
		fmt.Fprintln(w, titleStyle.Render(article.Title))
		if article.ID != "" {
			fmt.Fprintln(w, field("ID", article.ID))
		}
		fmt.Fprintln(w, field("Slug", article.Slug))
		fmt.Fprintln(w, field("Date", article.DisplayDate))
		fmt.Fprintln(w, field("Reading time", article.ReadingTime))
		if len(article.Tags) > 0 {
			fmt.Fprintln(w, field("Tags", strings.Join(article.Tags, ", ")))
		}
		if article.Description != "" {
			fmt.Fprintln(w, metaStyle.Render(article.Description))
		}
		fmt.Fprintln(w, field("Blocks", fmt.Sprintf("%s rendered, %s skipped", formatNumber(article.Rendered), formatNumber(article.Skipped))))
		links = article.Links
	}

	counts := core.CountTypes(doc.Blocks)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Block types (%d)", len(doc.Blocks))))
	for _, tag := range core.SortedTypes(counts) {
		fmt.Fprintf(w, "  %-22s %s\n", typeName(tag), formatNumber(counts[tag]))
	}

	if len(links) > 0 {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Links (%d)", len(links))))
		for _, link := range links {
			fmt.Fprintln(w, "  "+urlStyle.Render(link))
		}
	}

	if listBlocks {
		fmt.Fprintln(w, headerStyle.Render("Blocks"))
		for i, b := range doc.Blocks {
			fmt.Fprintf(w, "%4d  %s\n", i+1, b.Summary())
		}
	}
	return nil
}
