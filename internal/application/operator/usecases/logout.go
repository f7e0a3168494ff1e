package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/memberhub/internal/shared/logger"
)

type LogoutUseCase struct {
	sessions SessionStore
	logger   logger.Interface
}

func NewLogoutUseCase(sessions SessionStore, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessions: sessions,
		logger:   logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		uc.logger.Errorw("failed to delete session", "error", err, "session_id", sessionID)
		return fmt.Errorf("failed to logout: %w", err)
	}

	uc.logger.Infow("operator logged out successfully", "session_id", sessionID)
	return nil
}
