package services

import (
	"context"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/promotion"
	"github.com/edubridge/lms-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService defines the interface for help-chat operations
type ChatService interface {
	// SendMessage posts into a thread. Users post into their own thread;
	// admins address any thread via the request's userId.
	SendMessage(ctx context.Context, sender *models.User, req *models.SendChatMessageRequest) (*models.ChatMessage, error)
	GetThread(ctx context.Context, requester *models.User, userID primitive.ObjectID, page, limit int) ([]*models.ChatMessage, error)
	ListThreads(ctx context.Context, page, limit int) ([]primitive.ObjectID, error)
}

type chatService struct {
	chatRepo repositories.ChatRepository
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo repositories.ChatRepository) ChatService {
	return &chatService{chatRepo: chatRepo}
}

// SendMessage persists a chat message into the addressed thread
func (s *chatService) SendMessage(ctx context.Context, sender *models.User, req *models.SendChatMessageRequest) (*models.ChatMessage, error) {
	fromAdmin := sender.Role == models.RoleAdmin

	threadOwner := sender.ID
	if fromAdmin {
		if req.UserID == "" {
			return nil, &promotion.ValidationError{Message: "admins must address a thread via userId"}
		}
		id, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, &promotion.ValidationError{Message: "invalid userId"}
		}
		threadOwner = id
	}

	message := &models.ChatMessage{
		UserID:    threadOwner,
		SenderID:  sender.ID,
		FromAdmin: fromAdmin,
		Body:      req.Body,
	}
	if err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetThread retrieves a thread and marks the other side's messages read
func (s *chatService) GetThread(ctx context.Context, requester *models.User, userID primitive.ObjectID, page, limit int) ([]*models.ChatMessage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	messages, err := s.chatRepo.FindByThread(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	// Reading a thread acknowledges the messages sent by the other side.
	fromAdmin := requester.Role != models.RoleAdmin
	if err := s.chatRepo.MarkThreadRead(ctx, userID, fromAdmin); err != nil {
		return nil, err
	}
	return messages, nil
}

// ListThreads lists thread owners for the admin inbox
func (s *chatService) ListThreads(ctx context.Context, page, limit int) ([]primitive.ObjectID, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.chatRepo.FindThreads(ctx, page, limit)
}
