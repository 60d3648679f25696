package intake

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
)

const (
	MaxFileSize = 16 * 1024 * 1024

	// PreviewSize bounds both sides of the preview thumbnail.
	PreviewSize = 200

	// MaxPreviewPixels caps the decoded canvas a preview may allocate.
	MaxPreviewPixels = 40_000_000

	MsgInvalidType = "Please select a valid image file (JPG, PNG, GIF)"
	MsgTooLarge    = "File size must be less than 16MB"
)

var ErrPreviewTooLarge = errors.New("image canvas too large for a preview")

var allowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}

// File is a user-selected file as the intake area sees it. Size is the
// declared size; when zero the length of Data is used.
type File struct {
	Name string
	Type string
	Size int64
	Data []byte
}

func (f File) size() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Data))
}

// ValidationError is a rejected file. Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the MIME type first and the size second.
func Validate(f File) error {
	if !slices.Contains(allowedTypes, f.Type) {
		return &ValidationError{Message: MsgInvalidType}
	}
	if f.size() > MaxFileSize {
		return &ValidationError{Message: MsgTooLarge}
	}
	return nil
}

// DetectType fills an empty declared type from the file content. A type
// the browser already declared is kept even when the bytes disagree; the
// classifier decodes the image anyway.
func DetectType(f *File) {
	if f.Type != "" || len(f.Data) == 0 {
		return
	}
	f.Type = http.DetectContentType(f.Data)
	if i := strings.IndexByte(f.Type, ';'); i >= 0 {
		f.Type = strings.TrimSpace(f.Type[:i])
	}
}

// Format is the short format label used in metrics ("jpeg", "png", ...).
func Format(f File) string {
	t := strings.ToLower(f.Type)
	if !strings.HasPrefix(t, "image/") {
		return "other"
	}
	t = strings.TrimPrefix(t, "image/")
	if t == "jpg" {
		return "jpeg"
	}
	if !slices.Contains(allowedTypes, "image/"+t) {
		return "other"
	}
	return t
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with binary units and at most two
// decimals: 0 Bytes, 500 Bytes, 1.5 KB, 2 MB.
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i := 0
	div := int64(1)
	for i < len(sizeUnits)-1 && n >= div*1024 {
		div *= 1024
		i++
	}
	v := float64(n) / float64(div)
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Describe is the one-line label shown for the accepted file.
func Describe(f File) string {
	return fmt.Sprintf("%s (%s)", f.Name, FormatFileSize(f.size()))
}

// Preview decodes the image and returns a PNG data URL of a thumbnail
// that fits in PreviewSize x PreviewSize.
func Preview(data []byte) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPreviewPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrPreviewTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	thumb := resize.Thumbnail(PreviewSize, PreviewSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
