package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Phaneesh28/project-backend/internal/domain"
	"github.com/Phaneesh28/project-backend/pkg/auth"
	"github.com/Phaneesh28/project-backend/pkg/events"
)

// ---------- Fakes ----------

type fakeAccountRepo struct {
	mu        sync.Mutex
	accounts  map[string]domain.Account
	findErr   error
	createErr error
	creates   int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]domain.Account)}
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	a, ok := f.accounts[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.accounts[account.Username]; ok {
		return domain.ErrAccountExists
	}
	f.accounts[account.Username] = *account
	return nil
}

type recordingPublisher struct {
	subjects []string
	payloads []interface{}
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, data interface{}) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newTestAuthService(repo *fakeAccountRepo, pub events.Publisher) (AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(repo, auth.NewBcryptHasher(bcrypt.MinCost), tokens, pub), tokens
}

func registerReq(username string) *domain.RegisterRequest {
	return &domain.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Phone:    "5550102030",
		Password: "hunter22",
	}
}

// ---------- Register ----------

func TestRegister_StoresHashedAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	pub := &recordingPublisher{}
	svc, _ := newTestAuthService(repo, pub)

	account, err := svc.Register(context.Background(), registerReq("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)

	stored := repo.accounts["alice"]
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))
	assert.False(t, stored.CreatedAt.IsZero())

	require.Equal(t, []string{events.AccountRegistered}, pub.subjects)
	evt := pub.payloads[0].(events.AccountRegisteredEvent)
	assert.Equal(t, "alice", evt.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeAccountRepo()
	svc, _ := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), registerReq("bob"))
	require.NoError(t, err)

	again := registerReq("bob")
	again.Email = "other@example.com"
	_, err = svc.Register(context.Background(), again)
	require.ErrorIs(t, err, domain.ErrAccountExists)
	assert.Equal(t, 1, repo.creates)
}

func TestRegister_SameEmailDifferentUsernameAllowed(t *testing.T) {
	repo := newFakeAccountRepo()
	svc, _ := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), registerReq("carol"))
	require.NoError(t, err)

	other := registerReq("carol2")
	other.Email = "carol@example.com"
	_, err = svc.Register(context.Background(), other)
	require.NoError(t, err)
}

func TestRegister_InsertRaceMapsToConflict(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.createErr = domain.ErrAccountExists
	svc, _ := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), registerReq("dave"))
	require.ErrorIs(t, err, domain.ErrAccountExists)
}

func TestRegister_StoreErrors(t *testing.T) {
	boom := errors.New("connection refused")

	repo := newFakeAccountRepo()
	repo.findErr = boom
	svc, _ := newTestAuthService(repo, nil)
	_, err := svc.Register(context.Background(), registerReq("erin"))
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrAccountExists)

	repo = newFakeAccountRepo()
	repo.createErr = boom
	svc, _ = newTestAuthService(repo, nil)
	_, err = svc.Register(context.Background(), registerReq("erin"))
	require.ErrorIs(t, err, boom)
}

func TestRegister_ValidationRejectedBeforeStore(t *testing.T) {
	repo := newFakeAccountRepo()
	svc, _ := newTestAuthService(repo, nil)

	req := registerReq("frank")
	req.Password = ""
	_, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.creates)
}

func TestRegister_PublishFailureDoesNotFail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc, _ := newTestAuthService(repo, &recordingPublisher{err: errors.New("nats down")})

	_, err := svc.Register(context.Background(), registerReq("gina"))
	require.NoError(t, err)
	assert.Contains(t, repo.accounts, "gina")
}

// ---------- Login ----------

func TestLogin_Success(t *testing.T) {
	repo := newFakeAccountRepo()
	svc, tokens := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), registerReq("henry"))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Username: " henry ", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "henry", claims.Username)
}

func TestLogin_FailuresAreDistinctInternally(t *testing.T) {
	repo := newFakeAccountRepo()
	svc, _ := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), registerReq("ivy"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{Username: "nobody", Password: "hunter22"})
	require.ErrorIs(t, err, domain.ErrUnknownUser)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{Username: "ivy", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrWrongPassword)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_StoreError(t *testing.T) {
	boom := errors.New("timeout")
	repo := newFakeAccountRepo()
	repo.findErr = boom
	svc, _ := newTestAuthService(repo, nil)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "jack", Password: "pw"})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newTestAuthService(newFakeAccountRepo(), nil)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "", Password: "pw"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{Username: "kim", Password: ""})
	require.ErrorIs(t, err, domain.ErrValidation)
}
