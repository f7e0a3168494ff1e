package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request structs:
//
//	cnphone  a member phone number, full-width digits allowed
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("cnphone", validatePhone)
	})
	return err
}

func validatePhone(fl validator.FieldLevel) bool {
	_, err := valueobjects.NewPhone(fl.Field().String())
	return err == nil
}
