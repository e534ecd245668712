package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection and blocks until the peer goes away.
func ServeWs(hub *Hub, conn *websocket.Conn, userName string) {
	client := newClient(hub, conn, userName)
	if !hub.join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

// RegisterRoutes mounts the live feed at /ws. Non-upgrade requests get 426.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Use("/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		ServeWs(hub, conn, conn.Query("userName"))
	}))
}
