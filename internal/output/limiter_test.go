package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitUnderCap(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 100)
	result, truncated := Limit(data, 200)
	assert.False(t, truncated)
	assert.Equal(t, data, result)
}

func TestLimitOverCap(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 300)
	result, truncated := Limit(data, 200)
	assert.True(t, truncated)
	assert.Equal(t, 200, len(result))
}

func TestLimitZeroCapUsesDefault(t *testing.T) {
	data := bytes.Repeat([]byte("a"), MaxCaptureBytes+128*1024)
	result, truncated := Limit(data, 0)
	assert.True(t, truncated)
	assert.Equal(t, MaxCaptureBytes, len(result))
}

func TestAggregatePrefersStderrOnContention(t *testing.T) {
	const budget = 600
	stdout := bytes.Repeat([]byte("a"), budget)
	stderr := bytes.Repeat([]byte("b"), budget)

	aggregated := Aggregate(stdout, stderr, budget)
	stdoutCap := budget / 3
	stderrCap := budget - stdoutCap

	assert.Equal(t, budget, len(aggregated))
	assert.Equal(t, bytes.Repeat([]byte("a"), stdoutCap), aggregated[:stdoutCap])
	assert.Equal(t, bytes.Repeat([]byte("b"), stderrCap), aggregated[stdoutCap:])
}

func TestAggregateRebalancesWhenStderrIsSmall(t *testing.T) {
	const budget = 600
	stdout := bytes.Repeat([]byte("a"), budget+100)
	stderr := []byte("b")

	aggregated := Aggregate(stdout, stderr, budget)
	stdoutLen := budget - 1

	assert.Equal(t, budget, len(aggregated))
	assert.Equal(t, bytes.Repeat([]byte("a"), stdoutLen), aggregated[:stdoutLen])
	assert.Equal(t, []byte("b"), aggregated[stdoutLen:])
}

func TestAggregateKeepsStdoutThenStderrWhenUnderCap(t *testing.T) {
	stdout := bytes.Repeat([]byte("a"), 4)
	stderr := bytes.Repeat([]byte("b"), 3)

	aggregated := Aggregate(stdout, stderr, 100)

	var expected []byte
	expected = append(expected, stdout...)
	expected = append(expected, stderr...)
	assert.Equal(t, expected, aggregated)
}

func TestAggregateSingleStreamOverCap(t *testing.T) {
	stdout := bytes.Repeat([]byte("a"), 300)

	aggregated := Aggregate(stdout, nil, 200)
	assert.Equal(t, stdout[:200], aggregated)
}

func TestAggregateZeroCapUsesDefault(t *testing.T) {
	stdout := bytes.Repeat([]byte("a"), MaxCaptureBytes+100)
	aggregated := Aggregate(stdout, nil, 0)
	assert.Equal(t, MaxCaptureBytes, len(aggregated))
}
