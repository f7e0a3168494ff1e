package valueobjects

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// mainland mobile number, after folding and dropping a +86 prefix
var phoneRegex = regexp.MustCompile(`^1[3-9][0-9]{9}$`)

// Phone is a member contact number in canonical ASCII form.
type Phone struct {
	value string
}

// NormalizePhone folds full-width digits to ASCII, strips blanks and
// dashes and drops a +86 country code, so "+86 １３８-0000 0000" and
// "13800000000" compare equal.
func NormalizePhone(raw string) string {
	folded := width.Fold.String(strings.TrimSpace(raw))
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(folded)
	if rest, ok := strings.CutPrefix(normalized, "+86"); ok && len(rest) == 11 {
		return rest
	}
	return normalized
}

func NewPhone(raw string) (*Phone, error) {
	normalized := NormalizePhone(raw)
	if normalized == "" {
		return nil, fmt.Errorf("phone cannot be empty")
	}
	if !phoneRegex.MatchString(normalized) {
		return nil, fmt.Errorf("invalid phone format: %s", raw)
	}
	return &Phone{value: normalized}, nil
}

func (p *Phone) String() string {
	return p.value
}
