package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamcheck/internal/check"
	"github.com/nao1215/scamcheck/internal/classifier"
	"github.com/nao1215/scamcheck/internal/clipboard"
	"github.com/nao1215/scamcheck/internal/config"
	"github.com/nao1215/scamcheck/internal/model"
	"github.com/nao1215/scamcheck/internal/render"
)

// inputReader turns command arguments into a check input.
type inputReader func(cmd *cobra.Command, args []string, cfg *config.Config) (*check.Input, error)

// checkError presents a failed check with its user-facing message while
// keeping the cause available to errors.Is.
type checkError struct {
	err error
}

func (e *checkError) Error() string {
	return check.Message(e.err)
}

func (e *checkError) Unwrap() error {
	return e.err
}

func newTextCmd(getenv env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text [message...]",
		Short: "Check a message for scam indicators",
		Long: `Check a pasted message (email, SMS, chat) for scam indicators.

The message is taken from the arguments, or from standard input when no
arguments are given or the only argument is "-".`,
		Example: `  scamcheck text "Your parcel is on hold, pay the fee at bit.ly/xyz"
  pbpaste | scamcheck text
  scamcheck text --json < message.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, getenv, model.ModalityText, readText)
		},
	}
	addCheckFlags(cmd)
	return cmd
}

func newImageCmd(getenv env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <file>",
		Short: "Check a screenshot or photo for scam indicators",
		Long: `Check an image (a screenshot of a message, a web page or a document) for
scam indicators. Any image type is accepted up to the configured size limit.
EXIF metadata such as camera, software and GPS presence is passed to the
classifier as extra context.`,
		Example: `  scamcheck image screenshot.png
  scamcheck image --markdown -o report.md invoice.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, getenv, model.ModalityImage, readImage)
		},
	}
	addCheckFlags(cmd)
	return cmd
}

func newURLCmd(getenv env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url <address>",
		Short: "Check a web address for scam indicators",
		Long: `Check a web address for scam indicators. A missing scheme defaults to https.

Unless --no-fetch is given, the page is fetched once and facts about it
(title, redirects, password fields, off-site forms) are passed to the
classifier. A fetch failure does not fail the check.

.onion addresses are fetched through --proxy or an embedded Tor daemon
started with --tor.`,
		Example: `  scamcheck url paypa1-secure-login.com
  scamcheck url --no-fetch https://example.com/prize
  scamcheck url --tor http://<address>.onion`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, getenv, model.ModalityURL, readURL)
		},
	}
	addCheckFlags(cmd)
	cmd.Flags().Bool("no-fetch", false, "Do not fetch the page, classify the address alone")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy for page fetches (e.g. 127.0.0.1:9050)")
	cmd.Flags().Bool("tor", false, "Start an embedded Tor daemon for .onion pages (requires tor installed)")
	return cmd
}

// addCheckFlags registers the output flags shared by every check command.
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Output result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output result in Markdown format")
	cmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().Bool("copy", false, "Copy a short summary of the result to the clipboard")
}

// runCheck resolves configuration, runs one check synchronously and writes
// the result.
func runCheck(cmd *cobra.Command, args []string, getenv env, m model.Modality, read inputReader) error {
	cfg, err := loadConfig(cmd, getenv)
	if err != nil {
		return err
	}
	if !cfg.IsConfigured() {
		return &checkError{err: classifier.ErrNotConfigured}
	}

	in, err := read(cmd, args, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	chk, err := check.New(m, a.classifier, a.checkOptions()...)
	if err != nil {
		return err
	}

	result, err := runSync(ctx, chk, in)
	if err != nil {
		return err
	}

	if err := outputResult(cmd, a, result); err != nil {
		return err
	}
	if cfg.CopyResult {
		clipboard.CopySummary(a.logger, clipboard.NewSystem(), result)
	}
	return nil
}

// runSync runs chk and waits for its single outcome.
func runSync(ctx context.Context, chk check.Check, in *check.Input) (*model.AnalysisResult, error) {
	var (
		result *model.AnalysisResult
		runErr error
	)
	err := chk.Run(ctx, in, check.Callbacks{
		OnResult: func(r *model.AnalysisResult) { result = r },
		OnError:  func(err error) { runErr = err },
	})
	if err != nil {
		return nil, err
	}
	if runErr != nil {
		return nil, &checkError{err: runErr}
	}
	return result, nil
}

// outputResult writes result to the report file or stdout in the
// selected format.
func outputResult(cmd *cobra.Command, a *app, result *model.AnalysisResult) error {
	output := cmd.OutOrStdout()

	if a.cfg.ReportFile != "" {
		dir := filepath.Dir(a.cfg.ReportFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		file, err := os.OpenFile(a.cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		output = file
	}

	var writer render.Writer
	switch {
	case a.cfg.JSONReport:
		writer = render.NewJSONWriter(output, render.WithPrettyPrint())
	case a.cfg.MarkdownReport:
		writer = render.NewMarkdownWriter(output)
	default:
		writer = render.NewSimpleWriter(output, render.WithVerbose(a.cfg.Verbose))
	}

	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if a.cfg.ReportFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Result written to %s\n", a.cfg.ReportFile)
	}
	return nil
}

func readText(cmd *cobra.Command, args []string, _ *config.Config) (*check.Input, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return &check.Input{Text: string(data)}, nil
	}
	return &check.Input{Text: strings.Join(args, " ")}, nil
}

func readImage(_ *cobra.Command, args []string, cfg *config.Config) (*check.Input, error) {
	data, err := check.ReadImage(args[0], cfg.MaxImageSize)
	if err != nil {
		return nil, err
	}
	return &check.Input{Image: data, ImageName: filepath.Base(args[0])}, nil
}

func readURL(_ *cobra.Command, args []string, _ *config.Config) (*check.Input, error) {
	return &check.Input{URL: args[0]}, nil
}
