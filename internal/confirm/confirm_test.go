package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ask(t *testing.T, input string) (string, string) {
	t.Helper()
	var out bytes.Buffer
	c := NewStdinConfirmer(strings.NewReader(input), &out)
	got, err := c.Ask("Execute this command?", []string{"y", "n", "c"}, "y")
	require.NoError(t, err)
	return got, out.String()
}

func TestAskExplicitChoices(t *testing.T) {
	for _, choice := range []string{"y", "n", "c"} {
		got, _ := ask(t, choice+"\n")
		assert.Equal(t, choice, got)
	}
}

func TestAskEmptyInputUsesDefault(t *testing.T) {
	got, _ := ask(t, "\n")
	assert.Equal(t, "y", got)
}

func TestAskEOFUsesDefault(t *testing.T) {
	got, _ := ask(t, "")
	assert.Equal(t, "y", got)
}

func TestAskUppercaseNormalized(t *testing.T) {
	got, _ := ask(t, "N\n")
	assert.Equal(t, "n", got)
}

func TestAskReasksOnInvalidInput(t *testing.T) {
	got, prompted := ask(t, "x\nn\n")
	assert.Equal(t, "n", got)
	assert.Contains(t, prompted, `invalid choice "x"`)
}

func TestAskShowsChoicesAndDefault(t *testing.T) {
	_, prompted := ask(t, "y\n")
	assert.Contains(t, prompted, "[y/n/c]")
	assert.Contains(t, prompted, "(y)")
}

func TestScriptedReplaysThenDefaults(t *testing.T) {
	s := NewScripted("n")
	got, err := s.Ask("p1", []string{"y", "n", "c"}, "y")
	require.NoError(t, err)
	assert.Equal(t, "n", got)

	got, err = s.Ask("p2", []string{"y", "n", "c"}, "y")
	require.NoError(t, err)
	assert.Equal(t, "y", got)

	assert.Equal(t, []string{"p1", "p2"}, s.Prompts)
}
