package recommendations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubGenerator struct {
	results []models.RecommendationResult
	err     error
}

func (s stubGenerator) Generate(context.Context, models.RecommendationRequest) ([]models.RecommendationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.RecommendationResult, len(s.results))
	copy(out, s.results)
	return out, nil
}

type stubImages struct {
	fail  map[string]bool
	delay time.Duration

	mu     sync.Mutex
	asked  []string
	active atomic.Int32
	peak   atomic.Int32
}

func (s *stubImages) FindImage(ctx context.Context, name string) (string, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}

	s.mu.Lock()
	s.asked = append(s.asked, name)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.fail[name] {
		return "", fmt.Errorf("%w: timeout", common.ErrImageLookup)
	}
	return "https://img/" + name + ".jpg", nil
}

func recipes(names ...string) []models.RecommendationResult {
	out := make([]models.RecommendationResult, len(names))
	for i, n := range names {
		out[i] = models.RecommendationResult{Name: n}
	}
	return out
}

func TestOrchestrator_IsolatesImageFailures(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &stubImages{fail: map[string]bool{"Second": true}}
	o := NewOrchestrator(stubGenerator{results: recipes("First", "Second", "Third")}, images, 4, time.Second, logging.Discard())

	res, err := o.Generate(context.Background(), models.RecommendationRequest{})
	require.NoError(t, err)

	require.Len(t, res, 3)
	assert.Equal(t, []string{"First", "Second", "Third"}, []string{res[0].Name, res[1].Name, res[2].Name})
	assert.Equal(t, "https://img/First.jpg", res[0].ImageURL)
	assert.Empty(t, res[1].ImageURL)
	assert.False(t, res[1].HasImage())
	assert.Equal(t, "https://img/Third.jpg", res[2].ImageURL)
}

func TestOrchestrator_PreservesOrderUnderConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("r%02d", i)
	}
	images := &stubImages{delay: 5 * time.Millisecond}
	o := NewOrchestrator(stubGenerator{results: recipes(names...)}, images, 3, time.Second, logging.Discard())

	res, err := o.Generate(context.Background(), models.RecommendationRequest{})
	require.NoError(t, err)

	for i, r := range res {
		assert.Equal(t, names[i], r.Name)
		assert.Equal(t, "https://img/"+names[i]+".jpg", r.ImageURL)
	}
	assert.LessOrEqual(t, images.peak.Load(), int32(3))
	assert.Len(t, images.asked, 20)
}

func TestOrchestrator_SlowLookupTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &stubImages{delay: time.Second}
	o := NewOrchestrator(stubGenerator{results: recipes("Slow")}, images, 1, 10*time.Millisecond, logging.Discard())

	res, err := o.Generate(context.Background(), models.RecommendationRequest{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Empty(t, res[0].ImageURL)
}

func TestOrchestrator_GeneratorFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &stubImages{}
	genErr := fmt.Errorf("%w: dial tcp: connection refused", common.ErrGeneration)
	o := NewOrchestrator(stubGenerator{err: genErr}, images, 2, time.Second, logging.Discard())

	res, err := o.Generate(context.Background(), models.RecommendationRequest{})
	require.ErrorIs(t, err, common.ErrGeneration)
	assert.Nil(t, res)
	assert.Empty(t, images.asked)
}

func TestOrchestrator_EmptyResult(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	o := NewOrchestrator(stubGenerator{results: nil}, nil, 2, time.Second, logging.Discard())

	res, err := o.Generate(context.Background(), models.RecommendationRequest{})
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.False(t, errors.Is(err, common.ErrGeneration))
}
