package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Len(t, Default().Pipeline.Actual.Columns(), 7)
}

func TestValidateThreshold(t *testing.T) {
	for _, v := range []float64{-0.1, 1.01, math.NaN()} {
		c := Default()
		c.Pipeline.MissingThreshold = v
		assert.ErrorContains(t, c.Validate(), "missing_threshold", v)
	}
	c := Default()
	c.Pipeline.MissingThreshold = 1
	require.NoError(t, c.Validate())
}
