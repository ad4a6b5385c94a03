package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebsocketHandler returns a websocket handler that registers connections with
// the notification hub. Identity is resolved by route middleware and the
// profile ID is read from connection locals.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		pidVal := conn.Locals("profileID")
		if pidVal == nil {
			_ = conn.Close()
			return
		}
		profileID, ok := pidVal.(uuid.UUID)
		if !ok {
			_ = conn.Close()
			return
		}

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"realtime delivery unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(profileID, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register profile %s: %v", profileID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
