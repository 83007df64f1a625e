package services

import (
	"context"
	"fmt"

	"eventplanner/internal/domain"
)

type emailService struct {
	renderer domain.EmailTemplateRenderer
	mailer   domain.Mailer
}

func NewEmailService(renderer domain.EmailTemplateRenderer, mailer domain.Mailer) domain.EmailService {
	return &emailService{
		renderer: renderer,
		mailer:   mailer,
	}
}

func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	subject, html, text, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendConfirmationCode(ctx context.Context, data *domain.ConfirmationCodeEmailData) error {
	subject, html, text, err := s.renderer.Render("confirmation", data)
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

func (s *emailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	subject, html, text, err := s.renderer.Render("invitation", data)
	if err != nil {
		return fmt.Errorf("render invitation email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}
	return nil
}
