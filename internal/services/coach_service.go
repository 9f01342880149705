package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

// coachFallbackMessage is returned whenever the upstream model fails. Coach
// failures are never surfaced as hard errors to the user.
const coachFallbackMessage = "I'm sorry, I'm having trouble connecting right now. Please try again later."

const chatHistoryLimit = 50

type chatStore interface {
	Create(ctx context.Context, userID int64, message string, response *string) (*models.ChatMessage, error)
	ListByUserID(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error)
}

// coachNotifier pushes a finished reply to the user's connected live clients.
type coachNotifier interface {
	NotifyReply(userID int64, message string, response string, timestamp time.Time)
}

type CoachService struct {
	chatRepo chatStore
	userRepo userReader
	ai       AIClient
	notifier coachNotifier
}

func NewCoachService(chatRepo chatStore, userRepo userReader, ai AIClient, notifier coachNotifier) *CoachService {
	return &CoachService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		ai:       ai,
		notifier: notifier,
	}
}

type ChatReply struct {
	models.ChatMessage
	Suggestions []string `json:"suggestions"`
}

// SendMessage asks the coach model for a reply, stores the exchange, and
// fans the reply out to any live websocket clients. An upstream failure
// degrades to the fallback payload instead of failing the request.
func (s *CoachService) SendMessage(ctx context.Context, userID int64, message string) (*ChatReply, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reply, err := s.ai.CoachReply(ctx, trimmed, user)
	if err != nil {
		log.Printf("coach reply for user %d degraded: %v", userID, err)
		reply = &CoachReply{Message: coachFallbackMessage, Suggestions: []string{}}
	}

	stored, err := s.chatRepo.Create(ctx, userID, trimmed, &reply.Message)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyReply(userID, stored.Message, reply.Message, stored.Timestamp)
	}

	return &ChatReply{
		ChatMessage: *stored,
		Suggestions: reply.Suggestions,
	}, nil
}

// History returns the latest exchanges, newest first.
func (s *CoachService) History(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.chatRepo.ListByUserID(ctx, userID, chatHistoryLimit)
}

// FormatChatTimestamp renders message timestamps for the live socket payloads.
func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
