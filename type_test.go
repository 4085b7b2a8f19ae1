// FILE: lixenwraith/dotenv/type_test.go
package dotenv

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedAccessors(t *testing.T) {
	s := NewStore()
	doc, err := Parse("NAME=svc\nPORT=8080\nHEX=0x1F\nRATIO=0.75\nTRUNC=3.9\nDEBUG=true\nTIMEOUT=30\nTICK=250ms\nBAD=abc")
	require.NoError(t, err)
	require.NoError(t, s.MergeDocument(doc, SourceFile))

	t.Run("String", func(t *testing.T) {
		v, err := s.String("NAME")
		require.NoError(t, err)
		assert.Equal(t, "svc", v)

		_, err = s.String("MISSING")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Int64", func(t *testing.T) {
		v, err := s.Int64("PORT")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), v)

		v, err = s.Int64("HEX")
		require.NoError(t, err)
		assert.Equal(t, int64(31), v)

		v, err = s.Int64("TRUNC")
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)

		_, err = s.Int64("BAD")
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("Bool", func(t *testing.T) {
		v, err := s.Bool("DEBUG")
		require.NoError(t, err)
		assert.True(t, v)

		_, err = s.Bool("BAD")
		assert.Error(t, err)
	})

	t.Run("Float64", func(t *testing.T) {
		v, err := s.Float64("RATIO")
		require.NoError(t, err)
		assert.InDelta(t, 0.75, v, 1e-9)

		_, err = s.Float64("MISSING")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Duration", func(t *testing.T) {
		v, err := s.Duration("TIMEOUT")
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, v)

		v, err = s.Duration("TICK")
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, v)

		_, err = s.Duration("BAD")
		assert.Error(t, err)
	})
}
