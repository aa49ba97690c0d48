package check

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/nao1215/scamcheck/internal/classifier"
	"github.com/nao1215/scamcheck/internal/model"
)

// DefaultMaxImageSize is the default upload limit in bytes.
const DefaultMaxImageSize int64 = 10 * 1024 * 1024

// ImageCheck classifies screenshots and photos.
type ImageCheck struct {
	*runner
}

// NewImageCheck creates an ImageCheck.
func NewImageCheck(c classifier.Classifier, opts ...Option) *ImageCheck {
	o := newOptions(opts)
	steps := []Step{
		&imageSizeStep{maxSize: o.maxImageSize},
		&sniffImageStep{},
		&exifHintStep{logger: o.logger},
	}
	return &ImageCheck{
		runner: newRunner(model.ModalityImage, c, steps, func(in *Input) bool {
			return len(in.Image) == 0
		}, o),
	}
}

// ReadImage loads an image file, refusing files above maxSize bytes
// before reading them.
func ReadImage(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedImage, path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, info.Size(), maxSize)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// DetectImageType returns the sniffed MIME type of data, or
// ErrUnsupportedImage when data is not an image.
func DetectImageType(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w (detected %s)", ErrUnsupportedImage, mime)
	}
	return mime, nil
}

type imageSizeStep struct {
	maxSize int64
}

func (s *imageSizeStep) Name() string {
	return "image_size"
}

func (s *imageSizeStep) Do(_ context.Context, job *Job) error {
	size := int64(len(job.Input.Image))
	if size == 0 {
		return ErrEmptyInput
	}
	if s.maxSize > 0 && size > s.maxSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, size, s.maxSize)
	}
	return nil
}

type sniffImageStep struct{}

func (s *sniffImageStep) Name() string {
	return "sniff_image"
}

func (s *sniffImageStep) Do(_ context.Context, job *Job) error {
	mime, err := DetectImageType(job.Input.Image)
	if err != nil {
		return err
	}
	job.Request.Image = job.Input.Image
	job.Request.ImageMIME = mime
	return nil
}
