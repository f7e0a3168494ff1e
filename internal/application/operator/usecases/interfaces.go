package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/domain/operator"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type TokenIssuer interface {
	Generate(op *operator.Operator, sessionID string) (string, time.Time, error)
}

type SessionStore interface {
	Save(ctx context.Context, sessionID string, session *operator.Session, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
