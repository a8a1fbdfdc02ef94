package controllers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dealbot/dealbot/sources/psql/dao"
	"dealbot/dealbot/sources/psql/models"
	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/logging"
)

// Processor runs the full interpret/scrape/compose pipeline for one user
// message. It always returns user-visible chat text.
type Processor interface {
	Process(ctx context.Context, userInput string) string
}

type ChatController struct {
	convDAO  *dao.ConversationDAO
	msgDAO   *dao.MessageDAO
	pipeline Processor
}

func NewChatController(convDAO *dao.ConversationDAO, msgDAO *dao.MessageDAO, pipeline Processor) *ChatController {
	return &ChatController{convDAO: convDAO, msgDAO: msgDAO, pipeline: pipeline}
}

func (c *ChatController) ListConversations(ctx context.Context, userID int) ([]types.ConversationSummary, error) {
	convs, err := c.convDAO.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]types.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summaries = append(summaries, types.ConversationSummary{
			ConversationID: conv.ConversationID,
			Title:          conv.Title,
			CreatedAt:      conv.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}

func (c *ChatController) NewConversation(ctx context.Context, userID int) (*models.Conversation, error) {
	return c.convDAO.CreateConversation(ctx, userID)
}

// GetConversation returns one conversation and its messages in timestamp
// order. Conversations belonging to other users are not found.
func (c *ChatController) GetConversation(ctx context.Context, userID int, conversationID string) (*models.Conversation, []types.MessageView, error) {
	conv, err := c.convDAO.GetForUser(ctx, conversationID, userID)
	if err != nil {
		return nil, nil, err
	}
	if conv == nil {
		return nil, nil, ErrConversationNotFound
	}
	msgs, err := c.msgDAO.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, nil, err
	}
	views := make([]types.MessageView, 0, len(msgs))
	for _, msg := range msgs {
		views = append(views, types.MessageView{
			Content:   msg.Content,
			IsUser:    msg.IsUser,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		})
	}
	return conv, views, nil
}

const titleMaxLen = 30

// SendMessage persists the user message, runs the pipeline, persists the
// reply. Pipeline failures surface as normal chat text, never as an
// error; exactly one user and one bot message are appended either way.
func (c *ChatController) SendMessage(ctx context.Context, userID int, req types.SendMessageRequest) (*types.SendMessageResponse, error) {
	conv, err := c.convDAO.GetForUser(ctx, req.ConversationID, userID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	// The first user message names the conversation; later ones never
	// touch the title.
	if conv.Title == dao.PlaceholderTitle {
		title := req.Message
		if runes := []rune(title); len(runes) > titleMaxLen {
			title = string(runes[:titleMaxLen]) + "..."
		}
		if err := c.convDAO.UpdateTitle(ctx, conv.ID, title); err != nil {
			return nil, err
		}
	}

	if _, err := c.msgDAO.SaveMessage(ctx, conv.ID, req.Message, true); err != nil {
		return nil, err
	}

	botResponse := c.pipeline.Process(ctx, req.Message)

	if _, err := c.msgDAO.SaveMessage(ctx, conv.ID, botResponse, false); err != nil {
		logging.ErrorLogger.Error("failed to persist bot reply",
			zap.String("conversation_id", req.ConversationID), zap.Error(err))
		// Secondary attempt: persist the error text as the bot's reply so
		// the conversation still gets exactly one bot message.
		botResponse = fmt.Sprintf("Sorry, I encountered an error while processing your request: %s", err)
		if _, err := c.msgDAO.SaveMessage(ctx, conv.ID, botResponse, false); err != nil {
			return nil, err
		}
	}

	return &types.SendMessageResponse{
		UserMessage: req.Message,
		BotResponse: botResponse,
	}, nil
}
