package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the notes API
//	-t int      request timeout in seconds, 0 for none
//	-d string   path of the local state database
//	-l string   initial locale (en, id)
//	-e string   editor format (html, markdown)
//	-log string log level
//
// Note: os.Args is filtered with flagx.FilterArgs so that -c/-config and
// any other component's flags do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l", "-e", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the notes API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local state database")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "initial locale (en, id)")
	fs.StringVar(&cfg.EditorFormat, "e", cfg.EditorFormat, "editor format (html, markdown)")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
