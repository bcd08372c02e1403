package config

import (
	"flag"

	"github.com/dmitrijs2005/nutriai/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8501")
//	-l string   log level (debug, info, warn, error)
//	-i string   Google OAuth client ID
//	-s string   Google OAuth client secret
//	-r string   OAuth redirect URI
//	-k string   session cookie secret
//	-g string   recommendation generator base URL
//	-b string   image backend (search, s3, none)
//	-w int      image lookup workers
//	-m string   chat backend (openai, gemini)
//
// Arguments are filtered through flagx.FilterArgs first so the -c and
// -env-file flags consumed by earlier stages do not break parsing.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-l", "-i", "-s", "-r", "-k", "-g", "-b", "-w", "-m"})

	fs := flag.NewFlagSet("nutriai", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to serve pages on")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.GoogleClientID, "i", cfg.GoogleClientID, "google oauth client id")
	fs.StringVar(&cfg.GoogleClientSecret, "s", cfg.GoogleClientSecret, "google oauth client secret")
	fs.StringVar(&cfg.RedirectURI, "r", cfg.RedirectURI, "oauth redirect uri")
	fs.StringVar(&cfg.SessionSecret, "k", cfg.SessionSecret, "session cookie secret")
	fs.StringVar(&cfg.GeneratorURL, "g", cfg.GeneratorURL, "recommendation generator url")
	fs.StringVar(&cfg.ImageBackend, "b", cfg.ImageBackend, "image backend: search, s3 or none")
	fs.IntVar(&cfg.ImageWorkers, "w", cfg.ImageWorkers, "parallel image lookups")
	fs.StringVar(&cfg.ChatBackend, "m", cfg.ChatBackend, "chat backend: openai or gemini")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
