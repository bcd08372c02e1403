// Package config handles configuration for the NutriAI server, including
// defaults, a JSON overlay, environment variables (optionally from a dotenv
// file) and command-line flags.
package config

import (
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

// Config holds runtime settings for the NutriAI server.
//
// Fields, grouped:
//   - HTTPAddr, LogLevel: page-serving endpoint and log verbosity.
//   - Google*: OAuth client credentials and provider endpoints. The client
//     ID doubles as the expected ID-token audience.
//   - SessionSecret, SessionIdleTTL: cookie signing and idle context teardown.
//   - Generator*: recommendation generator endpoint, per-call timeout and
//     the number of extra attempts after a retryable failure.
//   - Image*: enrichment backend ("search", "s3" or "none"), per-item
//     timeout and worker pool size.
//   - S3*: object-storage image catalog used when ImageBackend is "s3". An
//     empty S3BaseEndpoint means the regional AWS endpoint; a local MinIO
//     is selected with NUTRIAI_S3_ENDPOINT=http://127.0.0.1:9000/.
//   - Chat*, OpenAI*, Gemini*: chat-completion backend ("openai" or "gemini").
type Config struct {
	HTTPAddr string
	LogLevel string

	GoogleClientID     string
	GoogleClientSecret string
	RedirectURI        string
	GoogleAuthURL      string
	GoogleTokenURL     string
	GoogleCertsURL     string
	AuthTimeout        time.Duration

	SessionSecret  string
	SessionIdleTTL time.Duration

	GeneratorURL     string
	GeneratorTimeout time.Duration
	GeneratorRetries int

	ImageBackend        string
	ImageSearchURL      string
	ImageSearchKey      string
	ImageSearchEngineID string
	ImageTimeout        time.Duration
	ImageWorkers        int

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3PresignTTL   time.Duration

	ChatBackend  string
	ChatTimeout  time.Duration
	OpenAIURL    string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
}

// LoadDefaults populates Config with development defaults. Credentials are
// left empty and must come from the JSON file, the environment or flags.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8501"
	c.LogLevel = "info"

	c.RedirectURI = "http://localhost:8501/oauth/callback"
	c.GoogleAuthURL = google.Endpoint.AuthURL
	c.GoogleTokenURL = google.Endpoint.TokenURL
	c.GoogleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"
	c.AuthTimeout = 10 * time.Second

	c.SessionIdleTTL = 2 * time.Hour

	c.GeneratorURL = "http://localhost:8080"
	c.GeneratorTimeout = 30 * time.Second
	c.GeneratorRetries = 2

	c.ImageBackend = "search"
	c.ImageSearchURL = "https://www.googleapis.com/customsearch/v1"
	c.ImageTimeout = 5 * time.Second
	c.ImageWorkers = 4

	c.S3Bucket = "recipe-images"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3PresignTTL = 15 * time.Minute

	c.ChatBackend = "openai"
	c.ChatTimeout = 30 * time.Second
	c.OpenAIURL = "https://api.openai.com/v1/chat/completions"
	c.OpenAIModel = "gpt-4o"
	c.GeminiModel = "gemini-2.5-flash"
}

// LoadConfig builds a Config from os.Args. Later sources take precedence:
// defaults, JSON file, environment, flags.
func LoadConfig() *Config {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
