package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

// IdentityVerifier validates a provider-issued ID token.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.Identity, error)
}

// SessionIssuer mints session credentials for verified identities.
type SessionIssuer interface {
	Issue(identity *domain.Identity) (string, error)
}

type UseCase struct {
	verifier IdentityVerifier
	sessions SessionIssuer
	users    repository.UserRepository
	logger   *zap.Logger
}

func New(verifier IdentityVerifier, sessions SessionIssuer, users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		verifier: verifier,
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// Login verifies the ID token, records the user and returns a signed
// session token for the verified identity. The user row is advisory:
// sessions are self-contained, so a store failure downgrades to a warning
// rather than blocking login.
func (uc *UseCase) Login(ctx context.Context, idToken string) (string, *domain.Identity, error) {
	identity, err := uc.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", nil, err
	}

	if uc.users != nil {
		user := &domain.User{
			ID:    identity.SubjectID,
			Email: identity.Email,
			Name:  identity.Name,
		}
		if err := uc.users.Upsert(ctx, user); err != nil {
			uc.logger.Warn("user upsert failed", zap.String("user_id", identity.SubjectID), zap.Error(err))
		}
	}

	token, err := uc.sessions.Issue(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}
