package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/flagx"
	"github.com/dmitrijs2005/nutriai/internal/timex"
	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables. When -env-file is given
// the file is loaded first; variables already set in the process win over
// the file, as godotenv.Load never overrides. A missing file panics, the same
// way an unreadable JSON config does.
func parseEnv(cfg *Config, args []string) {
	if path := flagx.EnvFileFlag(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	lookupString(&cfg.HTTPAddr, "NUTRIAI_HTTP_ADDR")
	lookupString(&cfg.LogLevel, "NUTRIAI_LOG_LEVEL")

	lookupString(&cfg.GoogleClientID, "GOOGLE_CLIENT_ID")
	lookupString(&cfg.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	lookupString(&cfg.RedirectURI, "GOOGLE_REDIRECT_URI")
	lookupDuration(&cfg.AuthTimeout, "NUTRIAI_AUTH_TIMEOUT")

	lookupString(&cfg.SessionSecret, "NUTRIAI_SESSION_SECRET")
	lookupDuration(&cfg.SessionIdleTTL, "NUTRIAI_SESSION_IDLE_TTL")

	lookupString(&cfg.GeneratorURL, "NUTRIAI_GENERATOR_URL")
	lookupDuration(&cfg.GeneratorTimeout, "NUTRIAI_GENERATOR_TIMEOUT")
	lookupInt(&cfg.GeneratorRetries, "NUTRIAI_GENERATOR_RETRIES")

	lookupString(&cfg.ImageBackend, "NUTRIAI_IMAGE_BACKEND")
	lookupString(&cfg.ImageSearchKey, "IMAGE_SEARCH_API_KEY")
	lookupString(&cfg.ImageSearchEngineID, "IMAGE_SEARCH_ENGINE_ID")
	lookupDuration(&cfg.ImageTimeout, "NUTRIAI_IMAGE_TIMEOUT")
	lookupInt(&cfg.ImageWorkers, "NUTRIAI_IMAGE_WORKERS")

	lookupString(&cfg.S3Bucket, "NUTRIAI_S3_BUCKET")
	lookupString(&cfg.S3Region, "NUTRIAI_S3_REGION")
	lookupString(&cfg.S3BaseEndpoint, "NUTRIAI_S3_ENDPOINT")
	lookupString(&cfg.S3AccessKey, "NUTRIAI_S3_ACCESS_KEY")
	lookupString(&cfg.S3SecretKey, "NUTRIAI_S3_SECRET_KEY")

	lookupString(&cfg.ChatBackend, "NUTRIAI_CHAT_BACKEND")
	lookupDuration(&cfg.ChatTimeout, "NUTRIAI_CHAT_TIMEOUT")
	lookupString(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	lookupString(&cfg.OpenAIModel, "OPENAI_MODEL")
	lookupString(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	lookupString(&cfg.GeminiModel, "GEMINI_MODEL")
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// lookupInt and lookupDuration ignore malformed values and keep the
// previous setting.
func lookupInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func lookupDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
