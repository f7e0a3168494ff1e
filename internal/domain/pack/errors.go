package pack

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/shared/errors"
)

func ErrPackNotFound(id uint) *errors.AppError {
	return errors.NewNotFoundError(fmt.Sprintf("套餐 ID %d 不存在", id))
}
