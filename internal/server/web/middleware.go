package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/server/session"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// sessionMiddleware resolves the signed cookie to a live session. A missing,
// forged or expired cookie yields an anonymous session that is not tracked;
// only a successful login registers it and sets the cookie.
func (s *HTTPServer) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session

		if raw, err := c.Cookie(common.SessionCookieName); err == nil {
			if id, ok := s.signer.Verify(raw); ok {
				sess, _ = s.sessions.Get(id)
			}
		}

		if sess == nil {
			sess = s.sessions.NewSession()
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// persistSession tracks sess and points the browser at it.
func (s *HTTPServer) persistSession(c *gin.Context, sess *session.Session) {
	s.sessions.Add(sess)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, s.signer.Sign(sess.ID()), 0, "/", "", s.secure, true)
}

func (s *HTTPServer) dropSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, "", -1, "/", "", s.secure, true)
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// requireLogin answers 401 for sessions without an identity.
func (s *HTTPServer) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).IsAuthenticated() {
			respondError(c, common.ErrNotAuthenticated)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID, _ := common.MakeRandHexString(8)
		c.Header("X-Request-ID", requestID)
		c.Next()

		args := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if v, ok := c.Get(sessionKey); ok {
			args = append(args, "session", v.(*session.Session).ID())
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}
