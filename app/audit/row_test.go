package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanASCII(t *testing.T) {
	assert.Equal(t, "abc 123!", cleanASCII("abc 123!"))
	assert.Equal(t, "ab", cleanASCII("a\tb\n"))
	assert.Equal(t, "@user", cleanASCII("@user🙂"))
	assert.Equal(t, "", cleanASCII("Привет\x7f"))
}

func TestCleanUTF8(t *testing.T) {
	assert.Equal(t, "Привет\nмир", cleanUTF8("Привет\nмир\x00"))
	assert.Equal(t, "ok", cleanUTF8("o\xffk"))
}
