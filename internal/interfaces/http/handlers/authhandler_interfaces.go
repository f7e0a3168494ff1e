package handlers

import (
	"context"

	operatordto "github.com/orris-inc/memberhub/internal/application/operator/dto"
	operatorUsecases "github.com/orris-inc/memberhub/internal/application/operator/usecases"
)

// Use case interfaces for AuthHandler

type loginUseCase interface {
	Execute(ctx context.Context, cmd operatorUsecases.LoginCommand) (*operatordto.LoginResultDTO, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, sessionID string) error
}
