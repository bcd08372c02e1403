// Package dashboard ties the login flow, the recommendation pipeline and the
// advisor to a user's session. Every method is one user action: on failure
// the session is left exactly as it was before the call.
package dashboard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/logging"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
	"github.com/dmitrijs2005/nutriai/internal/server/recommendations"
	"github.com/dmitrijs2005/nutriai/internal/server/session"
)

type IdentityVerifier interface {
	AuthCodeURL() string
	Verify(ctx context.Context, code string) (models.Identity, error)
}

type Recommender interface {
	Generate(ctx context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error)
}

type Advisor interface {
	Advise(ctx context.Context, category models.AdvisoryCategory, text string, maxTokens int) (string, error)
}

type Service struct {
	verifier    IdentityVerifier
	recommender Recommender
	advisor     Advisor
	logger      logging.Logger
}

func NewService(v IdentityVerifier, r Recommender, a Advisor, logger logging.Logger) *Service {
	return &Service{verifier: v, recommender: r, advisor: a, logger: logger}
}

func (s *Service) AuthCodeURL() string {
	return s.verifier.AuthCodeURL()
}

// Login handles an authorization code arriving with a request. A session
// that already holds an identity never exchanges again, so a refreshed
// callback cannot replay a consumed code. Only one exchange runs per
// session; concurrent callers wait for it and share its outcome. The
// pending code is dropped once the attempt is over, successful or not.
func (s *Service) Login(ctx context.Context, sess *session.Session, code string) error {
	if sess.IsAuthenticated() {
		return nil
	}

	done, leader := sess.BeginLogin(code)
	if !leader {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		if sess.IsAuthenticated() {
			return nil
		}
		return fmt.Errorf("%w: concurrent login attempt failed", common.ErrAuthExchange)
	}
	defer sess.EndLogin()

	id, err := s.verifier.Verify(ctx, sess.PendingCode())
	if err != nil {
		s.logger.Warn(ctx, "login failed", "session", sess.ID(), "error", err)
		return err
	}

	sess.SetIdentity(id)
	s.logger.Info(ctx, "user logged in", "session", sess.ID(), "email", id.Email)
	return nil
}

// Logout clears identity, cache and any pending code.
func (s *Service) Logout(ctx context.Context, sess *session.Session) {
	sess.Clear()
	s.logger.Info(ctx, "user logged out", "session", sess.ID())
}

// Identity returns the logged-in user or common.ErrNotAuthenticated.
func (s *Service) Identity(sess *session.Session) (models.Identity, error) {
	id, ok := sess.GetIdentity()
	if !ok {
		return models.Identity{}, common.ErrNotAuthenticated
	}
	return id, nil
}

// Recommend builds a request from raw form input, runs the pipeline and
// caches the outcome. A failed generation leaves the previous cache alone.
func (s *Service) Recommend(ctx context.Context, sess *session.Session, rawRanges []int, rawCount int, ingredients string) ([]models.RecommendationResult, error) {
	if !sess.IsAuthenticated() {
		return nil, common.ErrNotAuthenticated
	}

	req, err := recommendations.BuildRequest(rawRanges, rawCount, ingredients)
	if err != nil {
		return nil, err
	}

	results, err := s.recommender.Generate(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "recommendation generation failed", "session", sess.ID(), "error", err)
		return nil, err
	}

	sess.SetCache(results)
	s.logger.Info(ctx, "recommendations generated", "session", sess.ID(), "count", len(results))
	return results, nil
}

// Cached returns the last successful results. generated is false when
// nothing has been generated in this session yet.
func (s *Service) Cached(sess *session.Session) (results []models.RecommendationResult, generated bool, err error) {
	if !sess.IsAuthenticated() {
		return nil, false, common.ErrNotAuthenticated
	}
	results, generated = sess.GetCache()
	return results, generated, nil
}

// Overview returns the nutrient breakdown of the cached recipe called name.
func (s *Service) Overview(sess *session.Session, name string) ([]models.NutrientValue, error) {
	results, generated, err := s.Cached(sess)
	if err != nil {
		return nil, err
	}
	if !generated {
		return nil, common.NewValidationError("name", "no recommendations generated yet")
	}

	for _, r := range results {
		if r.Name == name {
			return r.Overview(), nil
		}
	}
	return nil, common.NewValidationError("name", fmt.Sprintf("recipe %q is not among the recommendations", name))
}

// Advise answers a health question. Nothing is stored in the session.
func (s *Service) Advise(ctx context.Context, sess *session.Session, category models.AdvisoryCategory, text string, maxTokens int) (string, error) {
	if !sess.IsAuthenticated() {
		return "", common.ErrNotAuthenticated
	}
	return s.advisor.Advise(ctx, category, text, maxTokens)
}
