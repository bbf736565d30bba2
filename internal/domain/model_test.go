package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeJobStatus(t *testing.T) {
	cases := map[string]JobStatus{
		"STATUS_READY":      JobStatusReady,
		"COMPLETED":         JobStatusReady,
		"STATUS_FAILED":     JobStatusFailed,
		"STATUS_CANCELLED":  JobStatusFailed,
		"STATUS_TRAINING":   JobStatusTraining,
		"STATUS_FINETUNING": JobStatusTraining,
		"STATUS_QUEUED":     JobStatusPending,
		"":                  JobStatusPending,
		"something-else":    JobStatusPending,
	}
	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeJobStatus(input), "input %q", input)
	}
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.True(t, JobStatusReady.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusTraining.Terminal())
}

func TestManagedModel_Unlimited(t *testing.T) {
	assert.True(t, (&ManagedModel{UsageLimit: 0}).Unlimited())
	assert.True(t, (&ManagedModel{UsageLimit: -1}).Unlimited())
	assert.False(t, (&ManagedModel{UsageLimit: 1}).Unlimited())
}
