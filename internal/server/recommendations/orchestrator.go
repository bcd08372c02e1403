package recommendations

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
	"golang.org/x/sync/errgroup"
)

// Orchestrator generates recipes and enriches each with an image. Image
// lookups run on a bounded pool; a failed lookup only leaves that item's
// ImageURL empty.
type Orchestrator struct {
	generator   Generator
	images      ImageFinder
	workers     int
	itemTimeout time.Duration
	logger      logging.Logger
}

func NewOrchestrator(g Generator, images ImageFinder, workers int, itemTimeout time.Duration, logger logging.Logger) *Orchestrator {
	if images == nil {
		images = NoImages{}
	}
	return &Orchestrator{
		generator:   g,
		images:      images,
		workers:     max(workers, 1),
		itemTimeout: itemTimeout,
		logger:      logger,
	}
}

// Generate returns the enriched results in the generator's order. Only a
// generator failure is returned as an error.
func (o *Orchestrator) Generate(ctx context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error) {
	results, err := o.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(o.workers)

	for i := range results {
		g.Go(func() error {
			results[i].ImageURL = o.lookup(ctx, results[i].Name)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (o *Orchestrator) lookup(ctx context.Context, name string) string {
	if o.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.itemTimeout)
		defer cancel()
	}

	link, err := o.images.FindImage(ctx, name)
	if err != nil {
		o.logger.Debug(ctx, "image lookup failed", "recipe", name, "error", err)
		return ""
	}
	return link
}
