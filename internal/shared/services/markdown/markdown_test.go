package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToHTML(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToHTML("**十次卡**\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>十次卡</strong>")
	assert.NotContains(t, out, "<script>")

	empty, err := r.ToHTML("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRenderer_StripTags(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "VIP 客户", r.StripTags(" <b>VIP</b> 客户<img src=x onerror=alert(1)> "))
}
