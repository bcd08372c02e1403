package recommendations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/netx"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
	"github.com/sethvargo/go-retry"
)

// Generator maps a request to candidate recipes in relevance order.
type Generator interface {
	Generate(ctx context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error)
}

// HTTPGenerator calls the recipe generator's predict endpoint. Transport
// errors and 5xx answers are retried with exponential backoff.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
	retries  uint64
	backoff  time.Duration
	logger   logging.Logger
}

func NewHTTPGenerator(baseURL string, timeout time.Duration, retries int, logger logging.Logger) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: strings.TrimRight(baseURL, "/") + "/predict/",
		client:   &http.Client{Timeout: timeout},
		retries:  uint64(max(retries, 0)),
		backoff:  200 * time.Millisecond,
		logger:   logger,
	}
}

// Generate returns the generator's output. A null output is an empty,
// successful result. Any failure is wrapped in common.ErrGeneration; an
// error answer is reported by status only and its body goes to the log.
func (g *HTTPGenerator) Generate(ctx context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error) {
	body := toWire(req)
	b := retry.WithMaxRetries(g.retries, retry.NewExponential(g.backoff))

	var resp generatorResponse
	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		resp = generatorResponse{}

		err := netx.PostJSON(ctx, g.client, g.endpoint, nil, body, &resp)
		if err != nil && netx.IsTransient(err) {
			g.logger.Warn(ctx, "generator call failed, retrying", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		g.logger.Error(ctx, "generator call failed", "attempts", attempt, "error", err)
		var se *netx.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("%w: generator answered %s", common.ErrGeneration, se.Status)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrGeneration, err)
	}

	out := make([]models.RecommendationResult, 0, len(resp.Output))
	for _, r := range resp.Output {
		out = append(out, r.result())
	}
	return out, nil
}
