package document

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsAllowedTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"approved to verified", StatusApproved, StatusVerified, true},
		{"approved to rejected at final review", StatusApproved, StatusRejected, true},
		{"pending to verified skips review", StatusPending, StatusVerified, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"verified is terminal", StatusVerified, StatusApproved, false},
		{"no self transition", StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, isAllowedTransition(tc.from, tc.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusVerified.IsTerminal())
}

func TestHRView(t *testing.T) {
	id := uuid.NewString()
	docs := []Document{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusApproved},
		{Status: StatusRejected},
		{Status: StatusVerified},
	}

	got := HRView(id, "Asha", docs)
	assert.Equal(t, 2, got.Pending)
	assert.Equal(t, 1, got.Approved)
	assert.Equal(t, 1, got.Rejected)
	assert.Equal(t, 1, got.Verified)
	assert.True(t, got.NeedsReview)
	assert.Equal(t, AggregateRejected, got.Status)

	// projections never mutate their input
	assert.Equal(t, StatusPending, docs[0].Status)
}

func TestHRView_StatusPrecedence(t *testing.T) {
	id := uuid.NewString()

	cases := []struct {
		name string
		docs []Document
		want string
	}{
		{"no documents", nil, AggregateNotUploaded},
		{"rejected wins over pending", []Document{{Status: StatusRejected}, {Status: StatusPending}}, AggregateRejected},
		{"pending wins over approved", []Document{{Status: StatusPending}, {Status: StatusApproved}}, AggregatePending},
		{"all approved", []Document{{Status: StatusApproved}, {Status: StatusApproved}}, AggregateApproved},
		{"verified counts as approved for hr", []Document{{Status: StatusApproved}, {Status: StatusVerified}}, AggregateApproved},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HRView(id, "Asha", tc.docs).Status)
		})
	}
}

func TestFinalView(t *testing.T) {
	id := uuid.NewString()

	t.Run("awaiting verification", func(t *testing.T) {
		got := FinalView(id, "Asha", []Document{
			{Status: StatusApproved},
			{Status: StatusVerified},
		})
		assert.Equal(t, 1, got.AwaitingVerification)
		assert.Equal(t, 1, got.Verified)
		assert.False(t, got.Complete)
		assert.Equal(t, AggregateAwaitingFinal, got.Status)
	})

	t.Run("complete only when everything verified", func(t *testing.T) {
		got := FinalView(id, "Asha", []Document{
			{Status: StatusVerified},
			{Status: StatusVerified},
		})
		assert.True(t, got.Complete)
		assert.Equal(t, AggregateVerifiedComplete, got.Status)
	})

	t.Run("no documents is not complete", func(t *testing.T) {
		got := FinalView(id, "Asha", nil)
		assert.False(t, got.Complete)
		assert.Equal(t, AggregateNotUploaded, got.Status)
	})
}
