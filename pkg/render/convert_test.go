package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecodec/bento/pkg/errors"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`

func withRasterizer(t *testing.T, name string) {
	t.Helper()
	prev := Rasterizer
	Rasterizer = name
	t.Cleanup(func() { Rasterizer = prev })
}

func TestRasterizerMissing(t *testing.T) {
	withRasterizer(t, "bento-no-such-rasterizer")

	_, err := ToPDF([]byte(testSVG))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
	assert.Contains(t, err.Error(), "librsvg")

	_, err = ToPNG([]byte(testSVG), 1)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

func TestToPNGScale(t *testing.T) {
	for _, scale := range []float64{0, -2} {
		_, err := ToPNG([]byte(testSVG), scale)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "scale %g: %v", scale, err)
	}
}
