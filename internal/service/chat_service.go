package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
	"github.com/dbaweja699/PA-restaurant-sub001/pkg/cache"
)

// chatSessionKeyPrefix is the fixed key prefix the per-chat session
// identifier is stored under
const chatSessionKeyPrefix = "chat_session_id:"

// ChatbotSender forwards a message to the chatbot webhook
type ChatbotSender interface {
	Send(ctx context.Context, sessionID, message string) error
}

// ChatService handles chat conversations and the chatbot integration
type ChatService struct {
	repo    *repository.DashboardRepository
	cache   *cache.Cache
	chatbot ChatbotSender
	log     *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(repo *repository.DashboardRepository, c *cache.Cache, chatbot ChatbotSender, log *zap.Logger) *ChatService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatService{repo: repo, cache: c, chatbot: chatbot, log: log}
}

// List returns chat conversations
func (s *ChatService) List(ctx context.Context, limit int) ([]*model.Chat, error) {
	return s.repo.ListChats(ctx, limit)
}

// SessionID returns the session identifier for a chat. Chats imported from
// the chatbot already carry one on the row; for chats without one a stable
// identifier is minted and kept in the cache.
func (s *ChatService) SessionID(ctx context.Context, chatID int64) (string, error) {
	chat, err := s.repo.GetChatByID(ctx, chatID)
	if err != nil {
		return "", err
	}
	if chat.SessionID != "" {
		return chat.SessionID, nil
	}

	key := fmt.Sprintf("%s%d", chatSessionKeyPrefix, chatID)

	existing, err := s.cache.Get(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !cache.IsNotFound(err) {
		return "", err
	}

	sessionID := uuid.New().String()
	if err := s.cache.Set(ctx, key, sessionID, 0); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Forward sends a dashboard reply to the chatbot webhook. Delivery is
// fire-and-forget: a failure is logged and reported to the caller but never
// retried.
func (s *ChatService) Forward(ctx context.Context, chatID int64, message string) error {
	sessionID, err := s.SessionID(ctx, chatID)
	if err != nil {
		return fmt.Errorf("failed to resolve chat session: %w", err)
	}

	if err := s.chatbot.Send(ctx, sessionID, message); err != nil {
		s.log.Warn("chatbot webhook call failed",
			zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}
