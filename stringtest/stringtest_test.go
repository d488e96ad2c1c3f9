package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/yamlgrep/stringtest"
)

func TestJoinLF(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stringtest.JoinLF())
	assert.Equal(t, "one", stringtest.JoinLF("one"))
	assert.Equal(t, "one\ntwo\nthree", stringtest.JoinLF("one", "two", "three"))
}

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stringtest.Lines())
	assert.Equal(t, "one\n", stringtest.Lines("one"))
	assert.Equal(t, "one\ntwo\n", stringtest.Lines("one", "two"))
}
