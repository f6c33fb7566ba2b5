package money

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func TestFormat(t *testing.T) {
	f := NewFormatter("")

	out := f.Format(10500)
	assert.True(t, strings.HasSuffix(out, " FCFA"))
	assert.Equal(t, "10500", digitsOnly(out))
	assert.NotEqual(t, "10500 FCFA", out, "thousands should be grouped")

	assert.Equal(t, "50 FCFA", f.Format(50))
}

func TestSigned(t *testing.T) {
	f := NewFormatter("XOF")

	assert.Equal(t, "+200 XOF", f.Signed(200, true))
	assert.Equal(t, "-200 XOF", f.Signed(200, false))
}
