// Package server assembles the NutriAI dashboard: logging, the outbound
// clients selected by configuration, the session registry and the HTTP
// server. It handles graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/cryptox"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/advisory"
	"github.com/dmitrijs2005/nutriai/internal/server/auth"
	"github.com/dmitrijs2005/nutriai/internal/server/config"
	"github.com/dmitrijs2005/nutriai/internal/server/dashboard"
	"github.com/dmitrijs2005/nutriai/internal/server/recommendations"
	"github.com/dmitrijs2005/nutriai/internal/server/session"
	"github.com/dmitrijs2005/nutriai/internal/server/web"
)

const janitorInterval = time.Minute

type App struct {
	config   *config.Config
	logger   logging.Logger
	sessions *session.Registry
	http     *web.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	secret := []byte(c.SessionSecret)
	if len(secret) == 0 {
		logger.Warn(ctx, "session secret not configured, sessions will not survive a restart")
		secret = common.GenerateRandByteArray(32)
	}
	signer, err := cryptox.NewSigner(secret)
	if err != nil {
		return nil, fmt.Errorf("session signer: %w", err)
	}

	verifier, err := auth.NewVerifier(ctx, auth.Client{
		ID:          c.GoogleClientID,
		Secret:      c.GoogleClientSecret,
		RedirectURI: c.RedirectURI,
		AuthURL:     c.GoogleAuthURL,
		TokenURL:    c.GoogleTokenURL,
	}, c.GoogleCertsURL, c.AuthTimeout, logger.With("module", "auth"))
	if err != nil {
		return nil, fmt.Errorf("identity verifier: %w", err)
	}

	images, err := newImageFinder(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("image backend: %w", err)
	}

	chat, err := newChatClient(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("chat backend: %w", err)
	}

	generator := recommendations.NewHTTPGenerator(c.GeneratorURL, c.GeneratorTimeout, c.GeneratorRetries,
		logger.With("module", "generator"))
	orchestrator := recommendations.NewOrchestrator(generator, images, c.ImageWorkers, c.ImageTimeout,
		logger.With("module", "recommendations"))
	advisor := advisory.NewAdvisor(chat, logger.With("module", "advisory"))

	svc := dashboard.NewService(verifier, orchestrator, advisor, logger.With("module", "dashboard"))
	sessions := session.NewRegistry(c.SessionIdleTTL)
	secure := strings.HasPrefix(c.RedirectURI, "https://")

	return &App{
		config:   c,
		logger:   logger,
		sessions: sessions,
		http:     web.NewHTTPServer(c.HTTPAddr, logger, svc, sessions, signer, secure),
	}, nil
}

func newImageFinder(ctx context.Context, c *config.Config) (recommendations.ImageFinder, error) {
	switch c.ImageBackend {
	case "search":
		return recommendations.NewSearchFinder(c.ImageSearchURL, c.ImageSearchKey, c.ImageSearchEngineID, c.ImageTimeout), nil
	case "s3":
		return recommendations.NewS3Finder(ctx, recommendations.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			PresignTTL:   c.S3PresignTTL,
		})
	case "none", "":
		return recommendations.NoImages{}, nil
	}
	return nil, fmt.Errorf("unknown image backend %q", c.ImageBackend)
}

func newChatClient(ctx context.Context, c *config.Config) (advisory.ChatClient, error) {
	switch c.ChatBackend {
	case "openai", "":
		return advisory.NewOpenAIClient(c.OpenAIURL, c.OpenAIAPIKey, c.OpenAIModel, c.ChatTimeout), nil
	case "gemini":
		return advisory.NewGeminiClient(ctx, c.GeminiAPIKey, c.GeminiModel, "", c.ChatTimeout)
	}
	return nil, fmt.Errorf("unknown chat backend %q", c.ChatBackend)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sessions.RunJanitor(ctx, janitorInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
}
