package handlers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators_Phone(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators())

	type form struct {
		Phone string `binding:"omitempty,cnphone"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(&form{Phone: "13912345678"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&form{Phone: ""}))
	assert.Error(t, binding.Validator.ValidateStruct(&form{Phone: "1391234"}))
}
