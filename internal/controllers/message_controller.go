package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/services"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

type MessageController struct {
	messageService services.MessageService
}

func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

func (c *MessageController) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.SendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.messageService.Send(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, m)
}

func (c *MessageController) Inbox(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	items, err := c.messageService.Inbox(r.Context(), actor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func (c *MessageController) Conversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	items, err := c.messageService.Conversation(r.Context(), actor, mux.Vars(r)["userId"], r.URL.Query().Get("propertyId"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func (c *MessageController) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := c.messageService.MarkRead(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *MessageController) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	updated, err := c.messageService.MarkConversationRead(r.Context(), actor, mux.Vars(r)["userId"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MarkManyReadResponse{Updated: updated})
}

func (c *MessageController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	count, err := c.messageService.UnreadCount(r.Context(), actor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UnreadCountResponse{Count: count})
}
