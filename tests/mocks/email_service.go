package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	args := m.Called(ctx, toEmail, fullName, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	args := m.Called(ctx, toEmail, fullName, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendDonationClaimedEmail(ctx context.Context, toEmail, donorName, volunteerName, donationTitle string) error {
	args := m.Called(ctx, toEmail, donorName, volunteerName, donationTitle)
	return args.Error(0)
}

func (m *EmailService) SendDonationDeliveredEmail(ctx context.Context, toEmail, donorName, volunteerName, donationTitle string) error {
	args := m.Called(ctx, toEmail, donorName, volunteerName, donationTitle)
	return args.Error(0)
}

func (m *EmailService) SendNewReviewEmail(ctx context.Context, toEmail, donorName, donationTitle string, rating int) error {
	args := m.Called(ctx, toEmail, donorName, donationTitle, rating)
	return args.Error(0)
}
