package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one message in the help chat between a user and the admin
// team. Messages are grouped per user; admins reply into the user's thread.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"` // thread owner
	SenderID  primitive.ObjectID `bson:"senderId" json:"senderId"`
	FromAdmin bool               `bson:"fromAdmin" json:"fromAdmin"`
	Body      string             `bson:"body" json:"body"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// SendChatMessageRequest is the body for POST /chat/messages.
type SendChatMessageRequest struct {
	Body   string `json:"body" binding:"required"`
	UserID string `json:"userId,omitempty"` // admins set this to address a thread
}
