package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jimiland/blockhtml/pkg/config"
	"github.com/jimiland/blockhtml/pkg/log"
	"github.com/jimiland/blockhtml/pkg/page"
	"github.com/urfave/cli/v3"
)

// loadConfig loads the configuration named by the global --config flag and
// applies its log settings.
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyLogConfig(cfg, c.Bool("debug"))
	return cfg, nil
}

// applyLogConfig enables debug output. The --debug flag turns it on for every
// service regardless of the config file.
func applyLogConfig(cfg *config.Config, debug bool) {
	log.SetGlobalDebug(debug || cfg.Log.Debug)
	for _, name := range cfg.Log.DebugServices {
		log.EnableDebugFor(name)
	}
}

// inputArg returns the single INPUT argument of a command.
func inputArg(c *cli.Command) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one INPUT argument, got %d", c.Args().Len())
	}
	return c.Args().First(), nil
}

// readDocument decodes the document at path; "-" reads standard input.
func readDocument(path string) (*page.Document, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := page.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}
