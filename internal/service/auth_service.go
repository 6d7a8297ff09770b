package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Phaneesh28/project-backend/internal/domain"
	"github.com/Phaneesh28/project-backend/internal/repository"
	"github.com/Phaneesh28/project-backend/pkg/auth"
	"github.com/Phaneesh28/project-backend/pkg/events"
	"github.com/Phaneesh28/project-backend/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Account, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type authService struct {
	accounts repository.AccountRepository
	hasher   auth.PasswordHasher
	tokens   *auth.TokenManager
	eventBus events.Publisher
	now      func() time.Time
}

func NewAuthService(
	accounts repository.AccountRepository,
	hasher auth.PasswordHasher,
	tokens *auth.TokenManager,
	eventBus events.Publisher,
) AuthService {
	if eventBus == nil {
		eventBus = events.NoopPublisher{}
	}
	return &authService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		eventBus: eventBus,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Account, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.accounts.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAccountExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// a concurrent registration can win between the lookup and the insert
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	evt := events.AccountRegisteredEvent{
		Username:     account.Username,
		Email:        account.Email,
		RegisteredAt: account.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.AccountRegistered, evt); err != nil {
		logger.WarnContext(ctx, "Failed to publish account registered event", "error", err, "username", account.Username)
	}

	return account, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrUnknownUser
	}

	if !s.hasher.Verify(req.Password, account.PasswordHash) {
		return nil, domain.ErrWrongPassword
	}

	token, err := s.tokens.Issue(account.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.LoginResponse{Status: "ok", Token: token}, nil
}
