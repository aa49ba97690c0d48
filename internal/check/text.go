package check

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/scamcheck/internal/classifier"
	"github.com/nao1215/scamcheck/internal/model"
)

// DefaultMaxTextLength is the default limit for pasted text, in characters.
const DefaultMaxTextLength = 20000

// TextCheck classifies pasted messages, emails and SMS.
type TextCheck struct {
	*runner
}

// NewTextCheck creates a TextCheck.
func NewTextCheck(c classifier.Classifier, opts ...Option) *TextCheck {
	o := newOptions(opts)
	steps := []Step{
		&trimTextStep{maxLength: o.maxTextLength},
		&indicatorStep{logger: o.logger},
	}
	return &TextCheck{
		runner: newRunner(model.ModalityText, c, steps, func(in *Input) bool {
			return blank(in.Text)
		}, o),
	}
}

// trimTextStep trims the message and enforces the length limit.
type trimTextStep struct {
	maxLength int
}

func (s *trimTextStep) Name() string {
	return "trim_text"
}

func (s *trimTextStep) Do(_ context.Context, job *Job) error {
	text := strings.TrimSpace(job.Input.Text)
	if text == "" {
		return ErrEmptyInput
	}
	if n := utf8.RuneCountInString(text); s.maxLength > 0 && n > s.maxLength {
		return fmt.Errorf("%w: %d characters (limit %d)", ErrTextTooLong, n, s.maxLength)
	}
	job.Request.Content = text
	job.Text = text
	return nil
}
