package idutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateEventID(t *testing.T) {
	require.NoError(t, Init(1))

	before := time.Now().Add(-time.Second)
	a := GenerateEventID()
	b := GenerateEventID()

	require.Less(t, a.Int64(), b.Int64())
	require.Equal(t, int64(1), a.Node())
	require.True(t, TimeOf(a.Int64()).After(before))
}

func TestInit_InvalidNode(t *testing.T) {
	require.Error(t, Init(-1))
}
