package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealbot/dealbot/config"
	"dealbot/dealbot/controllers"
	"dealbot/dealbot/middlewares"
	"dealbot/dealbot/types"
)

// RegisterChatRoutes serves the conversation endpoints. Everything here
// requires an authenticated session.
func RegisterChatRoutes(r chi.Router, ctrl *controllers.ChatController, cfg config.Config) {
	r = r.With(middlewares.AuthMiddleware(cfg))

	// GET /chat : conversation listing for the sidebar, newest first
	r.Get("/chat", handleJSON(func(r *http.Request) (any, int, error) {
		userID := r.Context().Value(middlewares.UserIDKey).(int)
		convs, err := ctrl.ListConversations(r.Context(), userID)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return map[string]any{"conversations": convs}, http.StatusOK, nil
	}))

	r.Post("/new_conversation", handleJSON(func(r *http.Request) (any, int, error) {
		userID := r.Context().Value(middlewares.UserIDKey).(int)
		conv, err := ctrl.NewConversation(r.Context(), userID)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return conv, http.StatusCreated, nil
	}))

	r.Get("/conversation/{conversation_id}", handleJSON(func(r *http.Request) (any, int, error) {
		userID := r.Context().Value(middlewares.UserIDKey).(int)
		conversationID := chi.URLParam(r, "conversation_id")
		conv, msgs, err := ctrl.GetConversation(r.Context(), userID, conversationID)
		if err != nil {
			if errors.Is(err, controllers.ErrConversationNotFound) {
				return nil, http.StatusNotFound, err
			}
			return nil, http.StatusInternalServerError, err
		}
		return map[string]any{"conversation": conv, "messages": msgs}, http.StatusOK, nil
	}))

	// POST /send_message : runs the full pipeline synchronously within
	// the request. Pipeline failures still answer 200 with the error text
	// as the bot response.
	r.Post("/send_message", handleJSON(func(r *http.Request) (any, int, error) {
		userID := r.Context().Value(middlewares.UserIDKey).(int)
		var req types.SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		resp, err := ctrl.SendMessage(r.Context(), userID, req)
		if err != nil {
			if errors.Is(err, controllers.ErrConversationNotFound) {
				return nil, http.StatusNotFound, err
			}
			return nil, http.StatusInternalServerError, err
		}
		return resp, http.StatusOK, nil
	}))
}
