package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("unregistered type", func(t *testing.T) {
		type Unknown string

		_, err := ToEnum[Unknown]("x")
		require.Error(t, err)
	})


	t.Run("named string enum", func(t *testing.T) {
		type EnumString string

		bar := New(EnumString("bar"), "Bar")
		require.Equal(t, EnumString("bar"), bar)

		v, err := ToEnum[EnumString]("Bar")
		require.NoError(t, err)
		require.Equal(t, bar, v)

		_, err = ToEnum[EnumString]("bar")
		require.Error(t, err)

		_, err = ToEnum[EnumString]("foo")
		require.Error(t, err)
	})

	t.Run("unnamed string enum", func(t *testing.T) {
		type Role string

		admin := New(Role("admin"))

		v, err := ToEnum[Role]("admin")
		require.NoError(t, err)
		require.Equal(t, admin, v)
	})

	t.Run("int enum", func(t *testing.T) {
		type EnumInt int

		bar := New(EnumInt(100), "Bar")

		v, err := ToEnum[EnumInt]("Bar")
		require.NoError(t, err)
		require.Equal(t, bar, v)

		_, err = ToEnum[EnumInt]("100")
		require.Error(t, err)
	})
}
