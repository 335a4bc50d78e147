package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkuznecov/nutritrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-t string   spreadsheet title on Drive
//	-d string   local SQLite database path
//	-z string   IANA timezone name
//	-k string   Gemini API key
//	-m string   Gemini model name
//	-s string   service-account key file
//	-i int      backend request timeout in seconds
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-t", "-d", "-z", "-k", "-m", "-s", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.SpreadsheetTitle, "t", cfg.SpreadsheetTitle, "spreadsheet title on Drive")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local SQLite database path")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "IANA timezone name")
	fs.StringVar(&cfg.GeminiAPIKey, "k", cfg.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&cfg.GeminiModel, "m", cfg.GeminiModel, "Gemini model name")
	fs.StringVar(&cfg.ServiceAccountFile, "s", cfg.ServiceAccountFile, "service-account key file")
	requestTimeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "backend request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
