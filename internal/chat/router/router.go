package router

import (
	"context"

	"band_booking_service/internal/chat/app"
	"band_booking_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes registers the chat routes: the websocket entry of the live
// delivery gateway plus the query-style read operations for the HTTP layer.
func RegisterRoutes(r *fiber.App, chatWebsocket *app.ChatWebsocketHandler, chatHTTP *app.ChatHTTPHandler) {
	r.Use(middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))

	r.Post("/conversations", chatHTTP.StartConversation)
	r.Get("/conversations/:id", chatHTTP.GetHistory)
	r.Delete("/conversations/:id", chatHTTP.DeleteConversation)
	r.Get("/users/:id/conversations", chatHTTP.ListForUser)
	r.Get("/bands/:id/conversations", chatHTTP.ListForBand)
}
