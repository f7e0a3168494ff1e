package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/memberhub/internal/application/operator/dto"
	"github.com/orris-inc/memberhub/internal/domain/operator"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type CreateOperatorCommand struct {
	Account  string
	Name     string
	Password string
	Role     string
}

type CreateOperatorUseCase struct {
	operatorRepo operator.Repository
	hasher       PasswordHasher
	logger       logger.Interface
	now          func() time.Time
}

func NewCreateOperatorUseCase(operatorRepo operator.Repository, hasher PasswordHasher, logger logger.Interface) *CreateOperatorUseCase {
	return &CreateOperatorUseCase{
		operatorRepo: operatorRepo,
		hasher:       hasher,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

func (uc *CreateOperatorUseCase) Execute(ctx context.Context, cmd CreateOperatorCommand) (*dto.OperatorDTO, error) {
	uc.logger.Infow("executing create operator use case", "account", cmd.Account)

	role, err := operator.ParseRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if len(cmd.Password) < 6 {
		return nil, errors.NewValidationError("密码长度不能少于6位")
	}

	existing, err := uc.operatorRepo.GetByAccount(ctx, cmd.Account)
	if err != nil {
		uc.logger.Errorw("failed to check operator account", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("账号已存在")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash operator password", "error", err)
		return nil, errors.NewInternalError("创建账号失败", err.Error())
	}

	op, err := operator.NewOperator(cmd.Account, cmd.Name, hash, role, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.operatorRepo.Create(ctx, op); err != nil {
		uc.logger.Errorw("failed to create operator", "account", cmd.Account, "error", err)
		return nil, err
	}

	uc.logger.Infow("operator created successfully", "operator_id", op.ID(), "role", op.Role())
	return dto.ToOperatorDTO(op), nil
}
