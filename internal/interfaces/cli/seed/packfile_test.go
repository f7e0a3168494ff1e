package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackFile(t *testing.T) {
	src := `
packs:
  - name: 十次卡
    packType: times
    price: "199.00"
    totalTimes: 10
    validDay: 90
  - name: 储值500
    packType: amount
    price: "500"
    salePrice: "450.5"
    payload:
      bonus: 50
`
	cmds, err := ParsePackFile(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	assert.Equal(t, "十次卡", cmds[0].Name)
	assert.Equal(t, "times", cmds[0].PackType)
	assert.Equal(t, "199", cmds[0].Price.String())
	require.NotNil(t, cmds[0].TotalTimes)
	assert.Equal(t, 10, *cmds[0].TotalTimes)
	assert.Equal(t, 90, cmds[0].ValidDay)
	assert.True(t, cmds[0].SalePrice.IsZero())

	assert.Equal(t, "450.5", cmds[1].SalePrice.String())
	assert.Nil(t, cmds[1].TotalTimes)
	assert.Equal(t, 50, cmds[1].Payload["bonus"])
}

func TestParsePackFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing name", "packs:\n  - packType: times\n"},
		{"bad price", "packs:\n  - name: x\n    price: abc\n"},
		{"malformed yaml", "packs: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackFile(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestParsePackFile_Empty(t *testing.T) {
	cmds, err := ParsePackFile(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cmds)
}
