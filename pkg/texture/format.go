package texture

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/thecodec/bento/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "PNG"
	JPEG Format = "JPEG"
)

// Formats lists the supported output encodings.
var Formats = []Format{PNG, JPEG}

// jpegQuality is used for JPEG output.
const jpegQuality = 95

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToUpper(s)) {
	case PNG:
		return PNG, nil
	case JPEG, "JPG":
		return JPEG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported texture format %q (use PNG or JPEG)", s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

func (f Format) encode(w io.Writer, img image.Image) error {
	if f == JPEG {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	}
	return png.Encode(w, img)
}
