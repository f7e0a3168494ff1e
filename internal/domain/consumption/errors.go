package consumption

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/shared/errors"
)

func ErrConsumptionNotFound(id uint) *errors.AppError {
	return errors.NewNotFoundError(fmt.Sprintf("消费记录 ID %d 不存在", id))
}
