package handler

import (
	"encoding/json"
	"net/http"

	"campusccms/middleware"
	"campusccms/models"
	"campusccms/service"
)

// MessageHandler handles HTTP requests for the student/admin mailbox
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// Send handles POST /student/messages and POST /admin/messages. Student
// senders always reach the support mailbox; receiver_id only matters for
// admin senders.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, role, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if req.Body == "" {
		respondWithError(w, http.StatusBadRequest, "Validation error", "message is required")
		return
	}
	if role == models.RoleAdmin && req.ReceiverID == 0 {
		respondWithError(w, http.StatusBadRequest, "Validation error", "receiver_id is required")
		return
	}

	message, err := h.service.Send(senderID, req.ReceiverID, req.Body)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]int64{"message_id": message.MessageID})
}

// Inbox handles GET /student/inbox and GET /admin/inbox. Viewing the
// inbox marks all received unread messages as read.
func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	messages, err := h.service.Inbox(actorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messages)
}

// History handles GET /student/messages: the full conversation view,
// sent and received, with no read-flag side effects.
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	messages, err := h.service.History(actorID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messages)
}

// MarkRead handles POST /messages/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	messageID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid message ID")
		return
	}

	if err := h.service.MarkRead(messageID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
