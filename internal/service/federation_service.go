// File: internal/service/federation_service.go

// Package service contains the reconciliation engine driving one federation
// login attempt: exchange the GitHub code, reconcile the local user record
// with the RocketChat shadow account, and produce session credentials.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/config"
	domainErrors "github.com/apurv-1/RC4Community/internal/domain/errors"
	"github.com/apurv-1/RC4Community/internal/domain/models"
	"github.com/apurv-1/RC4Community/internal/domain/repository"
	"github.com/apurv-1/RC4Community/internal/infrastructure/security"
	"github.com/apurv-1/RC4Community/internal/utils/metrics"
)

// IdentityProvider is the external identity client contract (GitHub).
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code string) (*models.ProviderToken, error)
	FetchPrimaryEmail(ctx context.Context, token *models.ProviderToken) (string, error)
	FetchProfile(ctx context.Context, token *models.ProviderToken) (*models.Profile, error)
}

// ChatProvisioner is the chat platform contract (RocketChat).
type ChatProvisioner interface {
	ShadowUsername(login string) string
	Register(ctx context.Context, profile *models.Profile, password string) error
	Login(ctx context.Context, username, password string) (*models.ChatSession, error)
}

// EventPublisher publishes federation CloudEvents. Publish failures are never
// fatal to a login attempt.
type EventPublisher interface {
	PublishUserFederated(ctx context.Context, event models.UserFederatedEvent) error
	PublishUserRepaired(ctx context.Context, event models.UserRepairedEvent) error
	PublishUserLoggedIn(ctx context.Context, event models.UserLoggedInEvent) error
}

// LoginState names a step of the reconciliation state machine.
type LoginState int

const (
	StateExchange LoginState = iota
	StateLookup
	StateLedgerCheck
	StateProvision
	StateCommit
	StateChatLogin
	StateDone
)

// String returns the state name for logging.
func (s LoginState) String() string {
	switch s {
	case StateExchange:
		return "exchange"
	case StateLookup:
		return "lookup"
	case StateLedgerCheck:
		return "ledger_check"
	case StateProvision:
		return "provision"
	case StateCommit:
		return "commit"
	case StateChatLogin:
		return "chat_login"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// LoginResult is the terminal success payload of one attempt.
type LoginResult struct {
	User          *models.User
	ChatSession   *models.ChatSession
	IdentityToken string
}

// ClientMeta carries request metadata into published events.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// FederationService orchestrates identity exchange, shadow-account
// provisioning, local persistence and the pending-credential ledger.
type FederationService struct {
	provider    IdentityProvider
	provisioner ChatProvisioner
	users       repository.UserRepository
	ledger      repository.PendingCredentialStore
	encryption  security.EncryptionService
	jwtService  *security.JWTService
	events      EventPublisher
	cfg         config.SecurityConfig
	logger      *zap.Logger
}

// NewFederationService wires the reconciliation engine. events may be nil
// when Kafka is disabled.
func NewFederationService(
	provider IdentityProvider,
	provisioner ChatProvisioner,
	users repository.UserRepository,
	ledger repository.PendingCredentialStore,
	encryption security.EncryptionService,
	jwtService *security.JWTService,
	events EventPublisher,
	cfg config.SecurityConfig,
	logger *zap.Logger,
) *FederationService {
	return &FederationService{
		provider:    provider,
		provisioner: provisioner,
		users:       users,
		ledger:      ledger,
		encryption:  encryption,
		jwtService:  jwtService,
		events:      events,
		cfg:         cfg,
		logger:      logger.Named("federation_service"),
	}
}

// loginAttempt holds the state accumulated across the machine's steps.
type loginAttempt struct {
	code  string
	meta  ClientMeta
	token *models.ProviderToken
	email string
	// profile is set on the new-user path only.
	profile *models.Profile
	user    *models.User
	// encryptedCredential is the credential destined for (or read from) the
	// local record.
	encryptedCredential string
	// repaired marks that the credential came from the ledger rather than a
	// fresh users.register call.
	repaired    bool
	provisioned bool
	session     *models.ChatSession
}

// Login runs one federation attempt for the given authorization code.
// Failures carry a sentinel from the domain error taxonomy; only
// ErrInsufficientScope maps to 401, everything else to 500.
func (s *FederationService) Login(ctx context.Context, code string, meta ClientMeta) (*LoginResult, error) {
	attempt := &loginAttempt{code: code, meta: meta}

	state := StateExchange
	for state != StateDone {
		next, err := s.step(ctx, state, attempt)
		if err != nil {
			s.logger.Warn("Login attempt failed",
				zap.String("state", state.String()),
				zap.String("email", attempt.email),
				zap.Error(err),
			)
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, err
		}
		state = next
	}

	identityToken, err := s.jwtService.Sign(attempt.user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.publishOutcome(ctx, attempt)

	return &LoginResult{
		User:          attempt.user,
		ChatSession:   attempt.session,
		IdentityToken: identityToken,
	}, nil
}

func (s *FederationService) step(ctx context.Context, state LoginState, a *loginAttempt) (LoginState, error) {
	switch state {
	case StateExchange:
		return s.exchange(ctx, a)
	case StateLookup:
		return s.lookup(ctx, a)
	case StateLedgerCheck:
		return s.ledgerCheck(ctx, a)
	case StateProvision:
		return s.provision(ctx, a)
	case StateCommit:
		return s.commit(ctx, a)
	case StateChatLogin:
		return s.chatLogin(ctx, a)
	default:
		return StateDone, fmt.Errorf("invalid login state %d", state)
	}
}

// exchange swaps the authorization code for a provider token. Scope
// validation happens inside the provider client, before any account logic
// can run.
func (s *FederationService) exchange(ctx context.Context, a *loginAttempt) (LoginState, error) {
	token, err := s.provider.ExchangeCode(ctx, a.code)
	if err != nil {
		return StateExchange, err
	}
	a.token = token
	return StateLookup, nil
}

// lookup resolves the primary email and checks for an existing local record.
func (s *FederationService) lookup(ctx context.Context, a *loginAttempt) (LoginState, error) {
	email, err := s.provider.FetchPrimaryEmail(ctx, a.token)
	if err != nil {
		return StateLookup, err
	}
	a.email = email

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return StateLedgerCheck, nil
		}
		return StateLookup, fmt.Errorf("looking up local user: %w", err)
	}

	a.user = user
	a.encryptedCredential = user.RCPasswordEnc
	return StateChatLogin, nil
}

// ledgerCheck handles the new-user path: fetch the profile, then either
// consume a pending credential left by an earlier half-failed attempt, or
// move on to provisioning a fresh shadow account.
func (s *FederationService) ledgerCheck(ctx context.Context, a *loginAttempt) (LoginState, error) {
	profile, err := s.provider.FetchProfile(ctx, a.token)
	if err != nil {
		return StateLedgerCheck, err
	}
	a.profile = profile

	credential, ok, err := s.ledger.Get(a.email)
	if err != nil {
		return StateLedgerCheck, fmt.Errorf("reading pending-credential ledger: %w", err)
	}
	if !ok {
		return StateProvision, nil
	}

	// The shadow account already exists; consume the entry and reuse its
	// credential instead of registering again.
	if err := s.ledger.Remove(a.email); err != nil {
		return StateLedgerCheck, fmt.Errorf("consuming pending-credential ledger entry: %w", err)
	}
	a.encryptedCredential = credential
	a.repaired = true
	metrics.LedgerRepairsTotal.Inc()
	s.logger.Info("Repairing half-federated account from ledger", zap.String("email", a.email))
	return StateCommit, nil
}

// provision creates the RocketChat shadow account with a fresh random
// password and encrypts the password for storage.
func (s *FederationService) provision(ctx context.Context, a *loginAttempt) (LoginState, error) {
	password, err := security.GeneratePassword(s.cfg.PasswordLength)
	if err != nil {
		return StateProvision, err
	}

	if err := s.provisioner.Register(ctx, a.profile, password); err != nil {
		return StateProvision, err
	}
	a.provisioned = true
	metrics.ShadowAccountsTotal.Inc()

	encrypted, err := s.encryption.Encrypt(password, s.cfg.CredentialKey)
	if err != nil {
		// The shadow account exists but its credential is lost; nothing can
		// recover it, so surface the failure.
		return StateProvision, fmt.Errorf("encrypting chat credential: %w", err)
	}
	a.encryptedCredential = encrypted
	return StateCommit, nil
}

// commit persists the local user record. On failure the credential is parked
// in the ledger so the next attempt for this email repairs instead of
// re-registering.
func (s *FederationService) commit(ctx context.Context, a *loginAttempt) (LoginState, error) {
	now := time.Now()
	user := &models.User{
		ID:            uuid.New(),
		Email:         a.email,
		DisplayName:   a.profile.Name,
		Username:      a.profile.Username,
		AvatarURL:     a.profile.AvatarURL,
		RCPasswordEnc: a.encryptedCredential,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if ledgerErr := s.ledger.Put(a.email, a.encryptedCredential); ledgerErr != nil {
			s.logger.Error("Failed to park credential in ledger after persist failure",
				zap.String("email", a.email),
				zap.Error(ledgerErr),
			)
		}
		return StateCommit, fmt.Errorf("%w: %v", domainErrors.ErrLocalPersist, err)
	}

	a.user = user
	return StateChatLogin, nil
}

// chatLogin decrypts the stored credential and authenticates the shadow
// account. A failure here after a fresh commit leaves the committed record in
// place; there is no rollback.
func (s *FederationService) chatLogin(ctx context.Context, a *loginAttempt) (LoginState, error) {
	password, err := s.encryption.Decrypt(a.encryptedCredential, s.cfg.CredentialKey)
	if err != nil {
		return StateChatLogin, fmt.Errorf("%w: %v", domainErrors.ErrCredentialDecrypt, err)
	}

	session, err := s.provisioner.Login(ctx, s.provisioner.ShadowUsername(a.user.Username), password)
	if err != nil {
		if a.provisioned || a.repaired {
			s.logger.Warn("Chat login failed for freshly committed record; manual repair may be needed",
				zap.String("email", a.email),
			)
		}
		return StateChatLogin, err
	}

	a.session = session
	return StateDone, nil
}

func (s *FederationService) publishOutcome(ctx context.Context, a *loginAttempt) {
	if s.events == nil {
		return
	}
	now := time.Now()

	if a.provisioned {
		event := models.UserFederatedEvent{
			UserID:    a.user.ID.String(),
			Email:     a.user.Email,
			Username:  a.user.Username,
			Timestamp: now,
		}
		if err := s.events.PublishUserFederated(ctx, event); err != nil {
			s.logger.Error("Failed to publish user.federated event", zap.Error(err))
		}
	}
	if a.repaired {
		event := models.UserRepairedEvent{Email: a.user.Email, Timestamp: now}
		if err := s.events.PublishUserRepaired(ctx, event); err != nil {
			s.logger.Error("Failed to publish user.repaired event", zap.Error(err))
		}
	}

	loginEvent := models.UserLoggedInEvent{
		UserID:    a.user.ID.String(),
		Email:     a.user.Email,
		IPAddress: a.meta.IPAddress,
		UserAgent: a.meta.UserAgent,
		Timestamp: now,
	}
	if err := s.events.PublishUserLoggedIn(ctx, loginEvent); err != nil {
		s.logger.Error("Failed to publish user.logged_in event", zap.Error(err))
	}
}
