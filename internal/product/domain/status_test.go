package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(status ProductStatus) *Product {
	return &Product{
		ID:        "prod-1",
		OwnerID:   "seller-1",
		Name:      "Mechanical keyboard",
		Status:    status,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}
}

func TestApprove(t *testing.T) {
	testCases := []struct {
		name    string
		from    ProductStatus
		wantErr error
	}{
		{name: "from pending", from: StatusPending},
		{name: "repeated approve is a no-op", from: StatusApproved},
		{name: "from rejected", from: StatusRejected, wantErr: ErrInvalidTransition},
		{name: "from enabled", from: StatusEnabled, wantErr: ErrInvalidTransition},
		{name: "from disabled", from: StatusDisabled, wantErr: ErrInvalidTransition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newProduct(tc.from)
			err := p.Approve()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.from, p.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusApproved, p.Status)
			assert.Empty(t, p.RejectionReason)
		})
	}
}

func TestApprove_ClearsRejectionReason(t *testing.T) {
	p := newProduct(StatusPending)
	p.RejectionReason = "stale reason from a previous submission"

	require.NoError(t, p.Approve())
	assert.Empty(t, p.RejectionReason)
}

func TestReject(t *testing.T) {
	testCases := []struct {
		name    string
		from    ProductStatus
		reason  string
		wantErr error
	}{
		{name: "from pending with reason", from: StatusPending, reason: "blurry photos"},
		{name: "empty reason", from: StatusPending, reason: "", wantErr: ErrEmptyRejectionReason},
		{name: "whitespace reason", from: StatusPending, reason: "   ", wantErr: ErrEmptyRejectionReason},
		{name: "from approved", from: StatusApproved, reason: "blurry photos", wantErr: ErrInvalidTransition},
		{name: "from rejected", from: StatusRejected, reason: "blurry photos", wantErr: ErrInvalidTransition},
		{name: "from enabled", from: StatusEnabled, reason: "blurry photos", wantErr: ErrInvalidTransition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newProduct(tc.from)
			err := p.Reject(tc.reason)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.from, p.Status)
				assert.Empty(t, p.RejectionReason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusRejected, p.Status)
			assert.Equal(t, tc.reason, p.RejectionReason)
		})
	}
}

func TestEnableDisable(t *testing.T) {
	toggleable := []ProductStatus{StatusApproved, StatusEnabled, StatusDisabled}
	for _, from := range toggleable {
		p := newProduct(from)
		require.NoError(t, p.Enable(), "enable from %s", from)
		assert.Equal(t, StatusEnabled, p.Status)

		p = newProduct(from)
		require.NoError(t, p.Disable(), "disable from %s", from)
		assert.Equal(t, StatusDisabled, p.Status)
	}

	unmoderated := []ProductStatus{StatusPending, StatusRejected}
	for _, from := range unmoderated {
		p := newProduct(from)
		assert.ErrorIs(t, p.Enable(), ErrInvalidTransition, "enable from %s", from)
		assert.Equal(t, from, p.Status)

		p = newProduct(from)
		assert.ErrorIs(t, p.Disable(), ErrInvalidTransition, "disable from %s", from)
		assert.Equal(t, from, p.Status)
	}
}

func TestTransitions_RefreshUpdatedAt(t *testing.T) {
	p := newProduct(StatusPending)
	before := p.UpdatedAt

	require.NoError(t, p.Approve())
	assert.True(t, p.UpdatedAt.After(before))
}
