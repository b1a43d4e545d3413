package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

func boolPtr(b bool) *bool { return &b }

func fullTimeline() []domain.TimelineEntry {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []domain.TimelineEntry{
		{Status: domain.OrderStatusPending, Timestamp: &ts, Completed: boolPtr(true)},
		{Status: domain.OrderStatusConfirmed},
		{Status: domain.OrderStatusPreparing},
		{Status: domain.OrderStatusShipped},
		{Status: domain.OrderStatusDelivered},
	}
}

func TestProjectTimeline_ActiveStep(t *testing.T) {
	view := domain.ProjectTimeline(fullTimeline(), domain.OrderStatusConfirmed)

	assert.False(t, view.Cancelled)
	assert.Len(t, view.Steps, 5)

	active := 0
	for _, s := range view.Steps {
		if s.Active {
			active++
			assert.Equal(t, domain.OrderStatusConfirmed, s.Status)
			assert.False(t, s.Completed)
		}
	}
	assert.Equal(t, 1, active)
}

func TestProjectTimeline_PositionalInference(t *testing.T) {
	// server marked nothing past the first step; steps before the active one
	// count as completed by position
	view := domain.ProjectTimeline(fullTimeline(), domain.OrderStatusShipped)

	assert.True(t, view.Steps[0].Completed)
	assert.True(t, view.Steps[1].Completed)
	assert.True(t, view.Steps[2].Completed)
	assert.True(t, view.Steps[3].Active)
	assert.False(t, view.Steps[3].Completed)
	assert.False(t, view.Steps[4].Completed)
}

func TestProjectTimeline_ServerFlagWins(t *testing.T) {
	entries := fullTimeline()
	// server explicitly says confirmed did not complete even though it
	// precedes the active step
	entries[1].Completed = boolPtr(false)

	view := domain.ProjectTimeline(entries, domain.OrderStatusShipped)

	assert.False(t, view.Steps[1].Completed)
	assert.True(t, view.Steps[2].Completed)
	assert.True(t, view.Steps[3].Active)
}

func TestProjectTimeline_CancelledIsTerminal(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.TimelineEntry
	}{
		{name: "With history", entries: fullTimeline()},
		{name: "Empty history", entries: nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			view := domain.ProjectTimeline(test.entries, domain.OrderStatusCancelled)

			assert.True(t, view.Cancelled)
			assert.Len(t, view.Steps, 1)
			assert.Equal(t, domain.OrderStatusCancelled, view.Steps[0].Status)
		})
	}
}

func TestProjectTimeline_NoActiveWhenStatusAbsent(t *testing.T) {
	entries := []domain.TimelineEntry{
		{Status: domain.OrderStatusPending, Completed: boolPtr(true)},
	}
	view := domain.ProjectTimeline(entries, domain.OrderStatusShipped)
	for _, s := range view.Steps {
		assert.False(t, s.Active)
	}
}
