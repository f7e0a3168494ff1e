package member

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/shared/errors"
)

func ErrMemberNotFound(id uint) *errors.AppError {
	return errors.NewNotFoundError(fmt.Sprintf("会员 ID %d 不存在", id))
}

func ErrPhoneExists() *errors.AppError {
	return errors.NewConflictError("手机号已存在")
}

func ErrInsufficientBalance() *errors.AppError {
	return errors.NewInvalidStateError("余额不足")
}

func ErrInsufficientPoints() *errors.AppError {
	return errors.NewInvalidStateError("积分不足")
}
