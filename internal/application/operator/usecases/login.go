package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orris-inc/memberhub/internal/application/operator/dto"
	"github.com/orris-inc/memberhub/internal/domain/operator"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

const defaultSessionTTL = 2 * time.Hour

type LoginCommand struct {
	Account  string
	Password string
}

type LoginUseCase struct {
	operatorRepo operator.Repository
	hasher       PasswordHasher
	tokens       TokenIssuer
	sessions     SessionStore
	sessionTTL   time.Duration
	logger       logger.Interface
	now          func() time.Time
}

func NewLoginUseCase(
	operatorRepo operator.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sessions SessionStore,
	sessionTTL time.Duration,
	logger logger.Interface,
) *LoginUseCase {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &LoginUseCase{
		operatorRepo: operatorRepo,
		hasher:       hasher,
		tokens:       tokens,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.LoginResultDTO, error) {
	op, err := uc.operatorRepo.GetByAccount(ctx, cmd.Account)
	if err != nil {
		uc.logger.Errorw("failed to get operator by account", "error", err)
		return nil, err
	}
	// unknown account, wrong password and disabled account look the same
	if op == nil || !op.IsActive() {
		return nil, errInvalidCredentials()
	}
	if err := uc.hasher.Verify(cmd.Password, op.PasswordHash()); err != nil {
		uc.logger.Warnw("operator login rejected", "operator_id", op.ID())
		return nil, errInvalidCredentials()
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := uc.tokens.Generate(op, sessionID)
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "operator_id", op.ID(), "error", err)
		return nil, errors.NewInternalError("登录失败", err.Error())
	}

	session := &operator.Session{
		OperatorID: op.ID(),
		Account:    op.Account(),
		Name:       op.Name(),
		Role:       op.Role(),
	}
	if err := uc.sessions.Save(ctx, sessionID, session, uc.sessionTTL); err != nil {
		uc.logger.Errorw("failed to save operator session", "operator_id", op.ID(), "error", err)
		return nil, errors.NewInternalError("登录失败", err.Error())
	}

	now := uc.now()
	op.RecordLogin(now)
	if err := uc.operatorRepo.Update(ctx, op); err != nil {
		uc.logger.Warnw("failed to record operator login", "operator_id", op.ID(), "error", err)
	}

	uc.logger.Infow("operator logged in successfully", "operator_id", op.ID(), "session_id", sessionID)

	return &dto.LoginResultDTO{
		AccessToken: token,
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
		Operator:    dto.ToOperatorDTO(op),
	}, nil
}

func errInvalidCredentials() error {
	return errors.NewValidationError("用户名或者密码错误")
}
