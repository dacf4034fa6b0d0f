// Package server exposes capability decisions and preference overrides over
// HTTP for web front ends.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pthm-cable/plexus/detect"
	"github.com/pthm-cable/plexus/prefs"
)

// Server holds the handler dependencies.
type Server struct {
	store  prefs.Scoper
	h      detect.Heuristics
	logger *slog.Logger
}

// New creates a server backed by store. A nil logger uses slog.Default().
func New(store prefs.Scoper, h detect.Heuristics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, h: h, logger: logger}
}

// capabilityRequest is the browser's signal report.
type capabilityRequest struct {
	detect.Signals
	ClientID string `json:"clientId"`
}

type capabilityResponse struct {
	detect.Profile
	Score *int `json:"score,omitempty"`
}

type preferenceBody struct {
	Value *bool `json:"value"`
}

// Router builds the gin engine. gin.Default is used in debug mode; other
// modes log requests through slog.
func (s *Server) Router() *gin.Engine {
	var r *gin.Engine
	if gin.Mode() == gin.DebugMode {
		r = gin.Default()
	} else {
		r = gin.New()
		r.Use(gin.Recovery(), requestLogger(s.logger))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/capability", s.capability)
	api.GET("/preferences/:key", s.getPreference)
	api.PUT("/preferences/:key", s.putPreference)
	api.DELETE("/preferences/:key", s.deletePreference)
	return r
}

func (s *Server) capability(c *gin.Context) {
	var req capabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signals: " + err.Error()})
		return
	}

	if req.ClientID != "" {
		v, ok, err := s.store.Scope(req.ClientID).Get(c.Request.Context(), prefs.ParticlesEnabled)
		if err != nil {
			// Fall through to scoring
			s.logger.Warn("override read failed", "client", req.ClientID, "error", err)
		} else if ok {
			c.JSON(http.StatusOK, capabilityResponse{Profile: detect.ManualProfile(v, s.h)})
			return
		}
	}

	score := detect.Score(req.Signals, s.h)
	p := detect.Decide(req.Signals, s.h)
	s.logger.Info("capability decided",
		"client", req.ClientID,
		"enabled", p.Enabled,
		"count", p.Count,
		"score", score,
	)
	c.JSON(http.StatusOK, capabilityResponse{Profile: p, Score: &score})
}

// scoped resolves the client's store and validates the key. It writes the
// error response itself and returns ok=false on failure.
func (s *Server) scoped(c *gin.Context) (prefs.Store, string, bool) {
	key := c.Param("key")
	if !prefs.ValidKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown preference " + key})
		return nil, "", false
	}
	client := c.Query("client")
	if client == "" {
		client = prefs.DefaultScope
	}
	return s.store.Scope(client), key, true
}

func (s *Server) getPreference(c *gin.Context) {
	store, key, ok := s.scoped(c)
	if !ok {
		return
	}
	v, set, err := store.Get(c.Request.Context(), key)
	if err != nil {
		s.fail(c, "read preference", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": v, "set": set})
}

func (s *Server) putPreference(c *gin.Context) {
	store, key, ok := s.scoped(c)
	if !ok {
		return
	}
	var body preferenceBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `body must be {"value": bool}`})
		return
	}
	if err := store.Set(c.Request.Context(), key, *body.Value); err != nil {
		s.fail(c, "write preference", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": *body.Value, "set": true})
}

func (s *Server) deletePreference(c *gin.Context) {
	store, key, ok := s.scoped(c)
	if !ok {
		return
	}
	if err := store.Delete(c.Request.Context(), key); err != nil {
		s.fail(c, "delete preference", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, prefs.ErrUnknownKey) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error(op+" failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}
