package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitesurvey/pkg/schema"
	"github.com/goliatone/go-sitesurvey/pkg/session"
)

// SessionHandler exposes survey sessions over HTTP. Sessions live in memory
// for the lifetime of the process and are addressed by server-issued ids.
type SessionHandler struct {
	mu         sync.Mutex
	sessions   map[string]*session.Session
	newSession func() *session.Session
}

// NewSessionHandler constructs a handler; factory creates each new session.
func NewSessionHandler(factory func() *session.Session) *SessionHandler {
	return &SessionHandler{
		sessions:   make(map[string]*session.Session),
		newSession: factory,
	}
}

// RegisterRoutes mounts the session endpoints on the router group.
func (h *SessionHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/sessions", h.Create)
	r.GET("/sessions/:id/fields", h.Fields)
	r.GET("/sessions/:id/answers", h.Answers)
	r.PUT("/sessions/:id/answers/:key", h.SetAnswer)
	r.DELETE("/sessions/:id/answers/:key", h.ClearAnswer)
	r.PUT("/sessions/:id/mode", h.SetMode)
	r.PUT("/sessions/:id/location", h.SelectPoint)
	r.GET("/sessions/:id/report", h.Report)
}

// Create starts a new session at the default coordinates.
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.newSession()
	if err := s.Start(c.Request.Context()); err != nil && !errors.Is(err, session.ErrStaleSelection) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"id":       id,
		"mode":     s.Mode(),
		"location": s.Location(),
	})
}

// Fields returns the ordered renderable instances for the session.
func (h *SessionHandler) Fields(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	instances, err := s.Fields()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": instances})
}

// Answers returns a snapshot of all recorded answers.
func (h *SessionHandler) Answers(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": s.Answers()})
}

type answerRequest struct {
	Value string `json:"value"`
}

// SetAnswer records the answer for a key. An empty value is a valid answer.
func (h *SessionHandler) SetAnswer(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.SetAnswer(c.Param("key"), req.Value)
	c.Status(http.StatusNoContent)
}

// ClearAnswer removes a recorded answer.
func (h *SessionHandler) ClearAnswer(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	s.ClearAnswer(c.Param("key"))
	c.Status(http.StatusNoContent)
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SetMode switches the survey mode. Answers survive the switch.
func (h *SessionHandler) SetMode(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := schema.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.SetMode(mode)
	c.Status(http.StatusNoContent)
}

type locationRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

// SelectPoint resolves and commits location metadata for the point. A
// selection superseded by a newer one answers 409.
func (h *SessionHandler) SelectPoint(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SelectPoint(c.Request.Context(), req.Lat, req.Lng); err != nil {
		if errors.Is(err, session.ErrStaleSelection) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "status": s.Status()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": s.Location()})
}

// Report renders the plain-text report for the session.
func (h *SessionHandler) Report(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	text, err := s.Report()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, text)
}

func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, bool) {
	h.mu.Lock()
	s, ok := h.sessions[c.Param("id")]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}
