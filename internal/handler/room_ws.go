package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"consulto/config"
	"consulto/internal/auth"
	"consulto/internal/service"
	"consulto/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var roomUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeRoomWS handles WebRTC signaling for a consultation room: offer,
// answer, ice. Query: token (room token). The room token is the only
// credential accepted here; access tokens are refused.
func UpgradeRoomWS(cfg *config.JWTConfig, hub *ws.RoomHub, roomSvc *service.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}
		claims, err := auth.ParseRoomToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if err := roomSvc.MarkEntered(c.Request.Context(), claims, time.Now()); err != nil {
			log.Printf("[ROOM] mark entered room=%s member=%d: %v", claims.RoomName, claims.MemberID, err)
			c.JSON(http.StatusForbidden, gin.H{"error": "room unavailable"})
			return
		}
		conn, err := roomUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		client := &ws.Client{
			MemberID: claims.MemberID,
			Role:     claims.Role,
			Send:     make(chan []byte, 64),
		}
		room := hub.GetOrCreateRoom(claims.RoomName)
		room.Join(client)
		defer func() {
			room.Leave(claims.MemberID)
			client.Close()
			hub.DropIfEmpty(claims.RoomName)
		}()
		go func() {
			for msg := range client.Send {
				_ = conn.WriteMessage(websocket.TextMessage, msg)
			}
		}()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg struct {
				Type    string          `json:"type"`
				Payload json.RawMessage `json:"payload"`
			}
			if json.Unmarshal(raw, &msg) != nil {
				continue
			}
			switch msg.Type {
			case "offer", "answer", "ice":
				room.SendToOther(claims.MemberID, map[string]interface{}{"type": msg.Type, "payload": msg.Payload})
			}
		}
	}
}
