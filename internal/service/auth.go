package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"boardrent-backend/internal/domain"
	"boardrent-backend/internal/logger"
	"boardrent-backend/internal/security"
	"boardrent-backend/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid email or verification code")

// authService is the mock login collaborator: a single test account
// with a fixed verification code. It persists the current user so a
// restart resumes the same session, and it drives the identity
// notifier on every authentication change.
type authService struct {
	gateway   storage.Gateway
	tokens    security.TokenManager
	notifier  *IdentityNotifier
	log       *slog.Logger
	testEmail string
	testCode  string
	current   *domain.User
}

func NewAuthService(ctx context.Context, gateway storage.Gateway, tokens security.TokenManager, notifier *IdentityNotifier, testEmail, testCode string) AuthService {
	s := &authService{
		gateway:   gateway,
		tokens:    tokens,
		notifier:  notifier,
		log:       logger.WithService("auth"),
		testEmail: testEmail,
		testCode:  testCode,
	}

	// Resume a persisted session, replaying the identity change so the
	// stores load the returning user's scopes.
	var user domain.User
	storage.LoadJSON(ctx, gateway, storage.SessionKey, &user)
	if user.Email != "" {
		s.current = &user
		s.notifier.OnIdentityChanged(ctx, user.Email)
		s.log.Info("Session restored", "user_id", user.ID)
	}
	return s
}

func (s *authService) Login(ctx context.Context, email, code string) (*domain.User, string, error) {
	if email != s.testEmail || code != s.testCode {
		return nil, "", ErrInvalidCredentials
	}

	user := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Verified: true,
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	s.current = user
	if err := storage.SaveJSON(ctx, s.gateway, storage.SessionKey, user); err != nil {
		logger.PersistenceFailure("Login", storage.SessionKey, err)
	}
	s.notifier.OnIdentityChanged(ctx, user.Email)

	s.log.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context) {
	s.current = nil
	if err := s.gateway.Delete(ctx, storage.SessionKey); err != nil {
		logger.PersistenceFailure("Logout", storage.SessionKey, err)
	}
	s.notifier.OnIdentityChanged(ctx, "")
	s.log.Info("User logged out")
}

// DeleteAccount removes the account's persisted scopes and drops back
// to the guest identity.
func (s *authService) DeleteAccount(ctx context.Context) {
	if s.current == nil {
		return
	}
	identity := s.current.Email
	for _, ns := range []string{storage.NamespaceCart, storage.NamespaceOrders} {
		key := storage.ScopeKey(ns, identity)
		if err := s.gateway.Delete(ctx, key); err != nil {
			logger.PersistenceFailure("DeleteAccount", key, err)
		}
	}
	s.Logout(ctx)
	s.log.Info("Account deleted")
}

func (s *authService) CurrentUser() *domain.User {
	return s.current
}
