package transport

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/draft"
	"github.com/darkhorsekelly/mesh/internal/game"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// APIHandler wires a game.Session and its websocket Hub onto a gin
// Engine, exposing both the §6.1 websocket contract and an additive
// REST surface over the same session.
type APIHandler struct {
	session *game.Session
	store   *config.Store
	hub     *Hub
}

// NewAPIHandler constructs a handler bound to session, starting its
// Hub's broadcast loop in the background.
func NewAPIHandler(session *game.Session, store *config.Store) *APIHandler {
	hub := NewHub(session)
	go hub.Run()
	return &APIHandler{session: session, store: store, hub: hub}
}

// RegisterRoutes installs CORS, rate limiting, auth, and every route
// onto engine, mirroring the public/protected route-group split this
// codebase's API layer already uses.
func (h *APIHandler) RegisterRoutes(engine *gin.Engine) {
	engine.Use(corsMiddleware())

	limiter := NewRateLimiter(120, 30)

	engine.GET("/ws", h.hub.Subscribe)

	public := engine.Group("/api/v1")
	public.GET("/health", h.handleHealth)

	protected := engine.Group("/api/v1")
	protected.Use(limiter.Middleware(), AuthMiddleware())
	protected.GET("/state", h.handleGetState)
	protected.POST("/actions", h.handlePostAction)
	protected.POST("/tick", h.handlePostTick)
	protected.POST("/draft", h.handlePostDraft)
}

func corsMiddleware() gin.HandlerFunc {
	allowed := os.Getenv("ALLOWED_ORIGINS")
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowed == "*" || allowed == "" || strings.Contains(allowed, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) handleGetState(c *gin.Context) {
	state, pending := h.session.Snapshot()
	c.JSON(http.StatusOK, StatePayload{State: state, PendingActions: pending})
}

func (h *APIHandler) handlePostAction(c *gin.Context) {
	var action models.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, errorFrame("malformed action payload"))
		return
	}
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if err := h.session.QueueAction(c.Request.Context(), action); err != nil {
		c.JSON(http.StatusInternalServerError, errorFrame(err.Error()))
		return
	}
	h.hub.Broadcast(pendingActionsFrame([]models.Action{action}))
	c.JSON(http.StatusAccepted, gin.H{"queued": action.ID})
}

func (h *APIHandler) handlePostTick(c *gin.Context) {
	state, _, err := h.session.ExecuteTick(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorFrame(err.Error()))
		return
	}
	_, pending := h.session.Snapshot()
	payload := StatePayload{State: state, PendingActions: pending}
	h.hub.Broadcast(stateUpdateFrame(EventTickExecuted, state, pending))
	c.JSON(http.StatusOK, payload)
}

func (h *APIHandler) handlePostDraft(c *gin.Context) {
	state, pending := h.session.Snapshot()
	result := draft.Project(state, pending, h.store.Current())
	c.JSON(http.StatusOK, gin.H{
		"state":       result.State,
		"actionFlags": result.ActionFlags,
	})
}
