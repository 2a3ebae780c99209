package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"github.com/sushil1817/mealbridge-api/internal/config"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	SendDonationClaimedEmail(ctx context.Context, toEmail, donorName, volunteerName, donationTitle string) error
	SendDonationDeliveredEmail(ctx context.Context, toEmail, donorName, volunteerName, donationTitle string) error
	SendNewReviewEmail(ctx context.Context, toEmail, donorName, donationTitle string, rating int) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/email/templates"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("MealBridge <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Verify Your Email",
		Name:  fullName,
		Link:  fmt.Sprintf("http://%s/verify-email?token=%s", s.config.Domain, verificationToken),
	}
	return s.sendEmail(toEmail, "Verify your MealBridge account", "verification.html", data)
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Reset Your Password",
		Name:  fullName,
		Link:  fmt.Sprintf("http://%s/reset-password?token=%s", s.config.Domain, resetToken),
	}
	return s.sendEmail(toEmail, "Reset your MealBridge password", "password_reset.html", data)
}

func (s *service) SendDonationClaimedEmail(ctx context.Context, toEmail, donorName, volunteerName, donationTitle string) error {
	data := struct {
		Title         string
		Name          string
		VolunteerName string
		DonationTitle string
	}{
		Title:         "Your Donation Was Claimed",
		Name:          donorName,
		VolunteerName: volunteerName,
		DonationTitle: donationTitle,
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s is on the way to pick up your donation", volunteerName), "donation_claimed.html", data)
}

func (s *service) SendDonationDeliveredEmail(ctx context.Context, toEmail, donorName, volunteerName, donationTitle string) error {
	data := struct {
		Title         string
		Name          string
		VolunteerName string
		DonationTitle string
	}{
		Title:         "Your Donation Was Delivered",
		Name:          donorName,
		VolunteerName: volunteerName,
		DonationTitle: donationTitle,
	}
	return s.sendEmail(toEmail, "Your donation reached people in need", "donation_delivered.html", data)
}

func (s *service) SendNewReviewEmail(ctx context.Context, toEmail, donorName, donationTitle string, rating int) error {
	data := struct {
		Title         string
		Name          string
		DonationTitle string
		Rating        int
	}{
		Title:         "New Feedback on Your Donation",
		Name:          donorName,
		DonationTitle: donationTitle,
		Rating:        rating,
	}
	return s.sendEmail(toEmail, "A volunteer left feedback on your donation", "new_review.html", data)
}
