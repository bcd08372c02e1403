package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
	"github.com/dmitrijs2005/nutriai/internal/server/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var alice = models.Identity{Email: "alice@example.com", DisplayName: "Alice"}

type fakeVerifier struct {
	identity models.Identity
	err      error

	mu      sync.Mutex
	codes   []string
	entered chan struct{}
	release chan struct{}
}

func (f *fakeVerifier) AuthCodeURL() string { return "https://provider/auth" }

func (f *fakeVerifier) Verify(_ context.Context, code string) (models.Identity, error) {
	f.mu.Lock()
	f.codes = append(f.codes, code)
	f.mu.Unlock()

	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		<-f.release
	}
	return f.identity, f.err
}

func (f *fakeVerifier) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.codes)
}

type fakeRecommender struct {
	results []models.RecommendationResult
	err     error
	reqs    []models.RecommendationRequest
}

func (f *fakeRecommender) Generate(_ context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error) {
	f.reqs = append(f.reqs, req)
	return f.results, f.err
}

type fakeAdvisor struct {
	answer string
	err    error
}

func (f *fakeAdvisor) Advise(context.Context, models.AdvisoryCategory, string, int) (string, error) {
	return f.answer, f.err
}

func defaultValues() []int {
	return []int{500, 50, 0, 0, 400, 100, 10, 10, 10}
}

func newService(v *fakeVerifier, r *fakeRecommender, a *fakeAdvisor) *Service {
	if v == nil {
		v = &fakeVerifier{identity: alice}
	}
	if r == nil {
		r = &fakeRecommender{}
	}
	if a == nil {
		a = &fakeAdvisor{}
	}
	return NewService(v, r, a, logging.Discard())
}

func loggedIn(t *testing.T, svc *Service) *session.Session {
	t.Helper()
	sess := session.New("s1")
	require.NoError(t, svc.Login(context.Background(), sess, "code-1"))
	return sess
}

func TestLogin_Success(t *testing.T) {
	v := &fakeVerifier{identity: alice}
	svc := newService(v, nil, nil)
	sess := session.New("s1")

	require.NoError(t, svc.Login(context.Background(), sess, "code-1"))

	assert.True(t, sess.IsAuthenticated())
	got, err := svc.Identity(sess)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
	assert.Empty(t, sess.PendingCode())
	assert.Equal(t, []string{"code-1"}, v.calls())
}

func TestLogin_NoReplayWhenAuthenticated(t *testing.T) {
	v := &fakeVerifier{identity: alice}
	svc := newService(v, nil, nil)
	sess := loggedIn(t, svc)

	require.NoError(t, svc.Login(context.Background(), sess, "code-1"))
	assert.Len(t, v.calls(), 1, "consumed code must not be exchanged twice")
	assert.Empty(t, sess.PendingCode())
}

func TestLogin_Failure(t *testing.T) {
	v := &fakeVerifier{err: fmt.Errorf("%w: status 400", common.ErrAuthExchange)}
	svc := newService(v, nil, nil)
	sess := session.New("s1")

	err := svc.Login(context.Background(), sess, "bad")
	require.ErrorIs(t, err, common.ErrAuthExchange)
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, sess.PendingCode())
}

func TestLogin_ConcurrentCallbacksExchangeOnce(t *testing.T) {
	v := &fakeVerifier{identity: alice, entered: make(chan struct{}, 1), release: make(chan struct{})}
	svc := newService(v, nil, nil)
	sess := session.New("s1")
	ctx := context.Background()

	var g errgroup.Group
	g.Go(func() error { return svc.Login(ctx, sess, "code-1") })
	<-v.entered

	for range 4 {
		g.Go(func() error { return svc.Login(ctx, sess, "code-1") })
	}
	close(v.release)

	require.NoError(t, g.Wait())
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, []string{"code-1"}, v.calls(), "one code, one exchange")
	assert.Empty(t, sess.PendingCode())
}

func TestLogin_ConcurrentCallbacksShareFailure(t *testing.T) {
	v := &fakeVerifier{
		err:     fmt.Errorf("%w: status 400", common.ErrAuthExchange),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := newService(v, nil, nil)
	sess := session.New("s1")
	ctx := context.Background()

	errs := make([]error, 3)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = svc.Login(ctx, sess, "bad")
	}()
	<-v.entered

	for i := 1; i < len(errs); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = svc.Login(ctx, sess, "bad")
		}()
	}
	close(v.release)
	wg.Wait()

	for _, err := range errs {
		require.ErrorIs(t, err, common.ErrAuthExchange)
	}
	assert.False(t, sess.IsAuthenticated())
}

func TestLogin_WaiterHonorsContext(t *testing.T) {
	v := &fakeVerifier{identity: alice, entered: make(chan struct{}, 1), release: make(chan struct{})}
	svc := newService(v, nil, nil)
	sess := session.New("s1")

	leaderDone := make(chan error, 1)
	go func() { leaderDone <- svc.Login(context.Background(), sess, "code-1") }()
	<-v.entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, svc.Login(ctx, sess, "code-1"), context.Canceled)

	close(v.release)
	require.NoError(t, <-leaderDone)
	assert.Len(t, v.calls(), 1)
}

func TestLogout(t *testing.T) {
	svc := newService(nil, &fakeRecommender{results: []models.RecommendationResult{{Name: "A"}}}, nil)
	sess := loggedIn(t, svc)
	_, err := svc.Recommend(context.Background(), sess, defaultValues(), 10, "")
	require.NoError(t, err)

	svc.Logout(context.Background(), sess)
	svc.Logout(context.Background(), sess)

	assert.False(t, sess.IsAuthenticated())
	_, err = svc.Identity(sess)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, _, err = svc.Cached(sess)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestGate(t *testing.T) {
	svc := newService(nil, nil, nil)
	sess := session.New("anon")
	ctx := context.Background()

	_, err := svc.Recommend(ctx, sess, defaultValues(), 10, "")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, _, err = svc.Cached(sess)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, err = svc.Overview(sess, "A")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, err = svc.Advise(ctx, sess, models.FirstAid, "burn", 150)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestRecommend_CachesOnSuccess(t *testing.T) {
	r := &fakeRecommender{results: []models.RecommendationResult{{Name: "A"}, {Name: "B"}}}
	svc := newService(nil, r, nil)
	sess := loggedIn(t, svc)

	_, generated, err := svc.Cached(sess)
	require.NoError(t, err)
	assert.False(t, generated)

	res, err := svc.Recommend(context.Background(), sess, defaultValues(), 37, "Milk;;Eggs; ")
	require.NoError(t, err)
	assert.Len(t, res, 2)

	require.Len(t, r.reqs, 1)
	assert.Equal(t, 20, r.reqs[0].Count)
	assert.Equal(t, []string{"Milk", "Eggs"}, r.reqs[0].Ingredients)

	cached, generated, err := svc.Cached(sess)
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Equal(t, res, cached)
}

func TestRecommend_FailureKeepsPreviousCache(t *testing.T) {
	r := &fakeRecommender{results: []models.RecommendationResult{{Name: "A"}}}
	svc := newService(nil, r, nil)
	sess := loggedIn(t, svc)

	_, err := svc.Recommend(context.Background(), sess, defaultValues(), 10, "")
	require.NoError(t, err)

	r.results, r.err = nil, fmt.Errorf("%w: connection refused", common.ErrGeneration)
	_, err = svc.Recommend(context.Background(), sess, defaultValues(), 10, "")
	require.ErrorIs(t, err, common.ErrGeneration)

	cached, generated, err := svc.Cached(sess)
	require.NoError(t, err)
	assert.True(t, generated)
	require.Len(t, cached, 1)
	assert.Equal(t, "A", cached[0].Name)
}

func TestRecommend_FailureBeforeFirstSuccess(t *testing.T) {
	r := &fakeRecommender{err: fmt.Errorf("%w: boom", common.ErrGeneration)}
	svc := newService(nil, r, nil)
	sess := loggedIn(t, svc)

	_, err := svc.Recommend(context.Background(), sess, defaultValues(), 10, "")
	require.Error(t, err)

	_, generated, err := svc.Cached(sess)
	require.NoError(t, err)
	assert.False(t, generated, "failed generation must not set an empty cache")
}

func TestRecommend_ValidationError(t *testing.T) {
	r := &fakeRecommender{}
	svc := newService(nil, r, nil)
	sess := loggedIn(t, svc)

	_, err := svc.Recommend(context.Background(), sess, []int{1}, 10, "")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, r.reqs)
}

func TestOverview(t *testing.T) {
	r := &fakeRecommender{results: []models.RecommendationResult{{
		Name:      "Soup",
		Nutrients: map[models.NutrientField]float64{models.Calories: 120, models.ProteinContent: 6},
	}}}
	svc := newService(nil, r, nil)
	sess := loggedIn(t, svc)

	_, err := svc.Overview(sess, "Soup")
	require.ErrorIs(t, err, common.ErrValidation, "nothing generated yet")

	_, err = svc.Recommend(context.Background(), sess, defaultValues(), 10, "")
	require.NoError(t, err)

	ov, err := svc.Overview(sess, "Soup")
	require.NoError(t, err)
	require.Len(t, ov, models.NutrientFieldCount)
	assert.Equal(t, models.NutrientValue{Field: models.Calories, Value: 120}, ov[0])
	assert.Equal(t, models.NutrientValue{Field: models.ProteinContent, Value: 6}, ov[8])

	_, err = svc.Overview(sess, "Stew")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestAdvise(t *testing.T) {
	svc := newService(nil, nil, &fakeAdvisor{answer: "Cool water."})
	sess := loggedIn(t, svc)

	answer, err := svc.Advise(context.Background(), sess, models.FirstAid, "burn", 150)
	require.NoError(t, err)
	assert.Equal(t, "Cool water.", answer)
}
