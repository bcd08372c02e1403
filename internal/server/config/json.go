package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nutriai/internal/flagx"
	"github.com/dmitrijs2005/nutriai/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so they may be written as "5s" or as integer nanoseconds.
// Only keys present in the file override the defaults.
type JsonConfig struct {
	HTTPAddr *string `json:"http_addr"`
	LogLevel *string `json:"log_level"`

	GoogleClientID     *string         `json:"google_client_id"`
	GoogleClientSecret *string         `json:"google_client_secret"`
	RedirectURI        *string         `json:"redirect_uri"`
	GoogleAuthURL      *string         `json:"google_auth_url"`
	GoogleTokenURL     *string         `json:"google_token_url"`
	GoogleCertsURL     *string         `json:"google_certs_url"`
	AuthTimeout        *timex.Duration `json:"auth_timeout"`

	SessionSecret  *string         `json:"session_secret"`
	SessionIdleTTL *timex.Duration `json:"session_idle_ttl"`

	GeneratorURL     *string         `json:"generator_url"`
	GeneratorTimeout *timex.Duration `json:"generator_timeout"`
	GeneratorRetries *int            `json:"generator_retries"`

	ImageBackend        *string         `json:"image_backend"`
	ImageSearchURL      *string         `json:"image_search_url"`
	ImageSearchKey      *string         `json:"image_search_key"`
	ImageSearchEngineID *string         `json:"image_search_engine_id"`
	ImageTimeout        *timex.Duration `json:"image_timeout"`
	ImageWorkers        *int            `json:"image_workers"`

	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	S3PresignTTL   *timex.Duration `json:"s3_presign_ttl"`

	ChatBackend  *string         `json:"chat_backend"`
	ChatTimeout  *timex.Duration `json:"chat_timeout"`
	OpenAIURL    *string         `json:"openai_url"`
	OpenAIAPIKey *string         `json:"openai_api_key"`
	OpenAIModel  *string         `json:"openai_model"`
	GeminiAPIKey *string         `json:"gemini_api_key"`
	GeminiModel  *string         `json:"gemini_model"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// It panics when the file cannot be read or parsed.
func parseJson(cfg *Config, args []string) {
	path := flagx.JsonConfigFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.HTTPAddr, jc.HTTPAddr)
	setString(&cfg.LogLevel, jc.LogLevel)

	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	setString(&cfg.RedirectURI, jc.RedirectURI)
	setString(&cfg.GoogleAuthURL, jc.GoogleAuthURL)
	setString(&cfg.GoogleTokenURL, jc.GoogleTokenURL)
	setString(&cfg.GoogleCertsURL, jc.GoogleCertsURL)
	setDuration(&cfg.AuthTimeout, jc.AuthTimeout)

	setString(&cfg.SessionSecret, jc.SessionSecret)
	setDuration(&cfg.SessionIdleTTL, jc.SessionIdleTTL)

	setString(&cfg.GeneratorURL, jc.GeneratorURL)
	setDuration(&cfg.GeneratorTimeout, jc.GeneratorTimeout)
	setInt(&cfg.GeneratorRetries, jc.GeneratorRetries)

	setString(&cfg.ImageBackend, jc.ImageBackend)
	setString(&cfg.ImageSearchURL, jc.ImageSearchURL)
	setString(&cfg.ImageSearchKey, jc.ImageSearchKey)
	setString(&cfg.ImageSearchEngineID, jc.ImageSearchEngineID)
	setDuration(&cfg.ImageTimeout, jc.ImageTimeout)
	setInt(&cfg.ImageWorkers, jc.ImageWorkers)

	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setDuration(&cfg.S3PresignTTL, jc.S3PresignTTL)

	setString(&cfg.ChatBackend, jc.ChatBackend)
	setDuration(&cfg.ChatTimeout, jc.ChatTimeout)
	setString(&cfg.OpenAIURL, jc.OpenAIURL)
	setString(&cfg.OpenAIAPIKey, jc.OpenAIAPIKey)
	setString(&cfg.OpenAIModel, jc.OpenAIModel)
	setString(&cfg.GeminiAPIKey, jc.GeminiAPIKey)
	setString(&cfg.GeminiModel, jc.GeminiModel)
}
