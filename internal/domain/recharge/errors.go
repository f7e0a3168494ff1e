package recharge

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/shared/errors"
)

func ErrRechargeNotFound(id uint) *errors.AppError {
	return errors.NewNotFoundError(fmt.Sprintf("充值记录 ID %d 不存在", id))
}

// ErrLinkedRechargeMissing is raised when a consumption references a
// recharge that does not exist.
func ErrLinkedRechargeMissing() *errors.AppError {
	return errors.NewNotFoundError("关联的充值记录不存在")
}

func ErrRechargeDisabled() *errors.AppError {
	return errors.NewInvalidStateError("充值记录已被禁用，无法消费")
}

func ErrRechargeExpired() *errors.AppError {
	return errors.NewInvalidStateError("充值记录已过期，无法消费")
}

func ErrRechargeExhausted() *errors.AppError {
	return errors.NewInvalidStateError("充值记录剩余次数不足，无法消费")
}

func ErrInsufficientBalance() *errors.AppError {
	return errors.NewInvalidStateError("余额不足")
}

func ErrInsufficientTimes() *errors.AppError {
	return errors.NewInvalidStateError("剩余次数不足")
}
