package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/utils"
)

// ContactService stores messages from the public contact form
type ContactService struct {
	messages ContactStore
	notifier Notifier
	mailer   AdminMailer
}

func NewContactService(messages ContactStore, notifier Notifier, mailer AdminMailer) *ContactService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if mailer == nil {
		mailer = noopMailer{}
	}
	return &ContactService{messages: messages, notifier: notifier, mailer: mailer}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	if !utils.AllPresent(req.Name, req.Email, req.Message) {
		return nil, Validation("name, email and message are required")
	}
	email := utils.NormalizeEmail(req.Email)
	if !utils.IsValidEmail(email) {
		return nil, Validation("invalid email format")
	}

	msg := &models.ContactMessage{
		Name:      utils.SanitizeInput(req.Name),
		Email:     email,
		Phone:     utils.SanitizeInput(req.Phone),
		Message:   utils.SanitizeInput(req.Message),
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, Unexpected("failed to save message", err)
	}

	s.notifier.NotifyAdmins("contact_message", "New contact message received", msg)
	body := fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", msg.Name, msg.Email, msg.Phone, msg.Message)
	if err := s.mailer.NotifyAdmin("New contact message", body); err != nil {
		log.Printf("Failed to send contact notice: %v", err)
	}
	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, Unexpected("failed to list messages", err)
	}
	return messages, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return Validation("invalid message id")
	}
	if err := s.messages.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("message not found")
		}
		return Unexpected("failed to delete message", err)
	}
	return nil
}
