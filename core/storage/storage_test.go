package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/storage"
)

func TestValidateName(t *testing.T) {
	t.Run("accepts plain names", func(t *testing.T) {
		require.NoError(t, storage.ValidateName("S22B-QN001"))
		require.NoError(t, storage.ValidateName("S22B-QN001_20260825120000.xlsx"))
	})

	t.Run("rejects escapes", func(t *testing.T) {
		for _, name := range []string{
			"",
			".",
			"..",
			"../other",
			"a/b",
			`a\b`,
			"nested/../escape",
		} {
			err := storage.ValidateName(name)
			assert.ErrorIs(t, err, storage.ErrInvalidName, "name %q", name)
		}
	})
}
