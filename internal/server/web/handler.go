package web

import (
	"net/http"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// home doubles as the redirect target of the provider, so a code arriving
// here is handled like the callback.
func (s *HTTPServer) home(c *gin.Context) {
	if c.Query(common.CodeQueryParam) != "" {
		s.callback(c)
		return
	}

	sess := currentSession(c)
	id, err := s.service.Identity(sess)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "auth_url": s.service.AuthCodeURL()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "identity": id})
}

func (s *HTTPServer) callback(c *gin.Context) {
	sess := currentSession(c)
	code := c.Query(common.CodeQueryParam)

	if code == "" {
		if sess.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		respondError(c, common.ErrAuthExchange)
		return
	}

	if err := s.service.Login(c.Request.Context(), sess, code); err != nil {
		respondError(c, err)
		return
	}
	s.persistSession(c, sess)

	// Redirecting drops the code from the address bar.
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *HTTPServer) logout(c *gin.Context) {
	sess := currentSession(c)
	s.service.Logout(c.Request.Context(), sess)
	s.sessions.Remove(sess.ID())

	s.dropSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}

type countBounds struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
	Step    int `json:"step,omitempty"`
}

func (s *HTTPServer) recommendationForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ranges": models.DefaultRanges(),
		"count": countBounds{
			Min:     models.MinRecommendations,
			Max:     models.MaxRecommendations,
			Default: models.DefaultRecommendations,
			Step:    models.RecommendationStep,
		},
	})
}

type recommendInput struct {
	Targets     []int  `json:"targets"`
	Count       *int   `json:"count"`
	Ingredients string `json:"ingredients"`
}

func (s *HTTPServer) recommend(c *gin.Context) {
	var in recommendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, common.NewValidationError("body", err.Error()))
		return
	}

	if in.Targets == nil {
		for _, r := range models.DefaultRanges() {
			in.Targets = append(in.Targets, r.Value)
		}
	}
	count := models.DefaultRecommendations
	if in.Count != nil {
		count = *in.Count
	}

	results, err := s.service.Recommend(c.Request.Context(), currentSession(c), in.Targets, count, in.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"generated": true, "recommendations": results})
}

func (s *HTTPServer) cachedRecommendations(c *gin.Context) {
	results, generated, err := s.service.Cached(currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if results == nil {
		results = []models.RecommendationResult{}
	}
	c.JSON(http.StatusOK, gin.H{"generated": generated, "recommendations": results})
}

func (s *HTTPServer) overview(c *gin.Context) {
	name := c.Query("name")
	ov, err := s.service.Overview(currentSession(c), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "nutrients": ov})
}

type adviceInput struct {
	Category  models.AdvisoryCategory `json:"category"`
	Text      string                  `json:"text"`
	MaxTokens int                     `json:"max_tokens"`
}

func (s *HTTPServer) advise(c *gin.Context) {
	var in adviceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, common.NewValidationError("body", err.Error()))
		return
	}

	answer, err := s.service.Advise(c.Request.Context(), currentSession(c), in.Category, in.Text, in.MaxTokens)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": in.Category, "advice": answer})
}

func (s *HTTPServer) adviceCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":   models.AdvisoryCategories(),
		"max_text_len": models.MaxAdvisoryTextLen,
		"tokens": countBounds{
			Min:     models.MinAdvisoryTokens,
			Max:     models.MaxAdvisoryTokens,
			Default: models.DefaultAdvisoryTokens,
		},
	})
}
