package render

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/thecodec/bento/pkg/errors"
)

// Rasterizer is the librsvg command used for graph diagrams that are not
// written as SVG or DOT.
var Rasterizer = "rsvg-convert"

const installHint = "install librsvg (brew install librsvg, apt install librsvg2-bin)"

// ToPDF converts a material graph SVG to a single-page PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rasterize(svg, "pdf")
}

// ToPNG converts a material graph SVG to PNG. Scale multiplies the SVG's
// own size and must be positive.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return rasterize(svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

func rasterize(svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(Rasterizer)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "graph %s output needs %s: %s", format, Rasterizer, installHint)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s %s: %s", Rasterizer, format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
