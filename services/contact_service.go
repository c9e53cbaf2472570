package services

import (
	"context"
	"errors"
	"strings"

	"nyayasetu/logger"
	"nyayasetu/models"
	"nyayasetu/repositories"
)

// ContactMailer forwards a stored submission by email.
// Implemented by mailer.Brevo.
type ContactMailer interface {
	Configured() bool
	SendContactNotification(ctx context.Context, c *models.Contact) error
}

// ContactService stores contact submissions and forwards them by mail.
type ContactService struct {
	repo   *repositories.ContactRepository
	mailer ContactMailer
}

func NewContactService(repo *repositories.ContactRepository, mailer ContactMailer) *ContactService {
	return &ContactService{repo: repo, mailer: mailer}
}

// ContactInput is the public contact form payload.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Submit persists the message first, then sends the notification email
// best-effort: a mail failure is logged but the submission stays stored.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.Contact, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, errors.New("message is required")
	}

	c, err := s.repo.Insert(ctx, &models.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: in.Message,
	})
	if err != nil {
		return nil, err
	}

	if !s.mailer.Configured() {
		logger.Log.Warn("contact mailer not configured, submission stored without notification")
		return c, nil
	}
	if err := s.mailer.SendContactNotification(ctx, c); err != nil {
		logger.ErrorWithFields("contact notification email failed", logger.Fields{
			"contact_id": c.ID.Hex(),
			"error":      err.Error(),
		})
		return c, nil
	}
	if err := s.repo.MarkEmailed(ctx, c.ID); err != nil {
		logger.Log.Warnf("failed to mark contact %s as emailed: %v", c.ID.Hex(), err)
	}
	c.Emailed = true
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.repo.List(ctx)
}
