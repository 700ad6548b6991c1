package app

import (
	"context"
	"encoding/json"
	"time"

	"band_booking_service/internal/chat/domain"
	"band_booking_service/pkg/logger"
	"band_booking_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler is the transport boundary of the live delivery
// gateway: it registers joining participants in the hub and turns inbound
// message events into persisted, pushed messages.
type ChatWebsocketHandler struct {
	messageUC *SendMessageUseCase
	hub       *Hub
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(messageUC *SendMessageUseCase, hub *Hub) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		messageUC: messageUC,
		hub:       hub,
	}
}

// HandleConnection is the entry point of one websocket connection.
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	principalID, _ := conn.Locals(middlewares.TokenPrincipalID).(string)
	logger.Log.Info("websocket connected", zap.String("principalID", principalID))

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		h.hub.Unregister(ctx, conn)
		logger.Log.Info("websocket closed", zap.String("principalID", principalID))
		conn.Close()
		cancel()
	}()

	// fiber answers close frames itself, the handler only observes them
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("websocket close frame:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		return nil
	})

	// keep the connection alive through idle proxies
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Errorf("ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, conn, principalID, mt, message)
	}
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, conn *websocket.Conn, principalID string, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, conn, principalID, msg)
	default:
		h.sendError(conn, "unknown message type")
	}
}

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, conn *websocket.Conn, principalID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		h.sendError(conn, "malformed request")
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch domain.Action(req.Action) {

	case domain.Join:
		participantID := req.UserID
		if participantID == "" {
			participantID = principalID
		}
		h.hub.Register(ctx, participantID, conn)
		resp.Success = true
		resp.Payload["participant_id"] = participantID

	case domain.SendMessage:
		m, err := h.messageUC.Execute(ctx, req.ConversationID, req.SenderID, req.RecipientID, req.Message)
		if err != nil {
			// authorization failures must surface, never drop silently
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["message_id"] = m.ID.String()
			resp.Payload["delivered"] = h.hub.IsConnected(req.RecipientID)
		}

	default:
		h.sendError(conn, "unknown action")
		return
	}

	if resp.Error != "" {
		logger.Log.Error("websocket action failed",
			zap.String("principalID", principalID),
			zap.String("action", req.Action),
			zap.String("err", resp.Error),
		)
	}
	h.sendResponse(conn, resp)
}

func (h *ChatWebsocketHandler) sendResponse(conn *websocket.Conn, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(conn *websocket.Conn, errorMsg string) {
	h.sendResponse(conn, domain.WSResponse{
		Action:  "error",
		Success: false,
		Error:   errorMsg,
	})
}
