package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewExclusion(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantA   string
		wantB   string
		wantErr error
	}{
		{name: "already ordered", a: "alice", b: "bob", wantA: "alice", wantB: "bob"},
		{name: "reversed", a: "bob", b: "alice", wantA: "alice", wantB: "bob"},
		{name: "self", a: "alice", b: "alice", wantErr: ErrSelfExclusion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExclusion("group1", tt.a, tt.b, "admin")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, got.ID)
			require.Equal(t, "group1", got.GroupID)
			require.Equal(t, tt.wantA, got.MemberAID)
			require.Equal(t, tt.wantB, got.MemberBID)
			require.Equal(t, "admin", got.CreatedBy)
		})
	}
}

func TestNewExclusion_Symmetric(t *testing.T) {
	ab, err := NewExclusion("group1", "u1", "u2", "")
	require.NoError(t, err)

	ba, err := NewExclusion("group1", "u2", "u1", "")
	require.NoError(t, err)

	require.Equal(t, ab.MemberAID, ba.MemberAID)
	require.Equal(t, ab.MemberBID, ba.MemberBID)
}
