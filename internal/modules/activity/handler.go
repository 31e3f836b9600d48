package activity

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fileshare/internal/domain"
	"fileshare/internal/pkg/jwt"
	"fileshare/internal/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type userResolver interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Handler upgrades admin dashboard connections to websockets.
// Authentication rides on a query parameter because the browser
// websocket API cannot send an Authorization header.
type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
	users      userResolver
}

func NewHandler(hub *Hub, jwtService *jwt.Service, users userResolver) *Handler {
	return &Handler{hub: hub, jwtService: jwtService, users: users}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/admin/events", h.HandleEvents)
}

// HandleEvents serves GET /admin/events?token=JWT
func (h *Handler) HandleEvents(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "token query parameter required"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), claims.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unknown user"})
		return
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "admin privileges required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(user.ID, conn)

	// Drain control frames; exit unregisters this connection only, so a
	// reconnect that already replaced it in the hub stays registered.
	go func() {
		defer h.hub.Unregister(user.ID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
