package execenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var parent = []string{
	"HOME=/home/u",
	"PATH=/usr/bin",
	"EDITOR=vim",
	"API_TOKEN=s3cret",
	"AWS_SECRET_ACCESS_KEY=abc",
}

func TestInheritAllDropsSecretsByDefault(t *testing.T) {
	env := Policy{}.derive(parent)
	assert.Contains(t, env, "HOME=/home/u")
	assert.Contains(t, env, "EDITOR=vim")
	assert.NotContains(t, env, "API_TOKEN=s3cret")
	assert.NotContains(t, env, "AWS_SECRET_ACCESS_KEY=abc")
}

func TestKeepSecrets(t *testing.T) {
	env := Policy{KeepSecrets: true}.derive(parent)
	assert.Contains(t, env, "API_TOKEN=s3cret")
}

func TestInheritCore(t *testing.T) {
	env := Policy{KeepSecrets: true}.derive(parent)
	assert.Contains(t, env, "EDITOR=vim")

	env = Policy{Inherit: InheritCore, KeepSecrets: true}.derive(parent)
	assert.Contains(t, env, "HOME=/home/u")
	assert.Contains(t, env, "PATH=/usr/bin")
	assert.NotContains(t, env, "EDITOR=vim")
}

func TestInheritNoneWithOverrides(t *testing.T) {
	env := Policy{Inherit: InheritNone, Set: map[string]string{"FOO": "bar"}}.derive(parent)
	assert.Equal(t, []string{"FOO=bar"}, env)
}

func TestExcludeGlobsAreCaseInsensitive(t *testing.T) {
	env := Policy{Exclude: []string{"edit*"}, KeepSecrets: true}.derive(parent)
	assert.NotContains(t, env, "EDITOR=vim")
	assert.Contains(t, env, "HOME=/home/u")
}

func TestSetOverridesInheritedValue(t *testing.T) {
	env := Policy{Set: map[string]string{"HOME": "/tmp/elsewhere"}}.derive(parent)
	assert.Contains(t, env, "HOME=/tmp/elsewhere")
	assert.NotContains(t, env, "HOME=/home/u")
}

func TestMalformedPatternIsIgnored(t *testing.T) {
	env := Policy{Exclude: []string{"["}, KeepSecrets: true}.derive(parent)
	assert.Contains(t, env, "HOME=/home/u")
}

func TestEnvironIsSorted(t *testing.T) {
	env := Policy{KeepSecrets: true}.derive(parent)
	for i := 1; i < len(env); i++ {
		assert.Less(t, env[i-1], env[i])
	}
}
