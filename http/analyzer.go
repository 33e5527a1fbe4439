// Package http submits chat exports to the remote analysis service.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/chatmbti"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ chatmbti.Analyzer = (*Analyzer)(nil)

// Service endpoints.
const (
	AnalyzePath = "/analyze/kakao"
	HealthPath  = "/health"
)

// Multipart field names.
const (
	fieldFiles    = "files"
	fieldUserName = "user_name"
)

// DefaultTimeout bounds a single request, upload included.
const DefaultTimeout = 120 * time.Second

// maxErrorBody caps how much of a non-2xx body is kept for the error message.
const maxErrorBody = 64 << 10

// ErrUnhealthy is returned when the health endpoint does not report "ok".
var ErrUnhealthy = errors.New("service unhealthy")

// Analyzer implements chatmbti.Analyzer over HTTP.
type Analyzer struct {
	baseURL string
	client  *http.Client
	decoder chatmbti.Decoder
	logger  *zap.Logger
	timeout time.Duration
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) AnalyzerOption {
	return func(a *Analyzer) {
		a.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// WithTimeout sets the timeout for a single request.
func WithTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// NewAnalyzer creates an Analyzer for the service at baseURL.
func NewAnalyzer(baseURL string, decoder chatmbti.Decoder, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		decoder: decoder,
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze uploads the files and the user name as one multipart request and
// decodes the JSON result. Failures to reach the service and non-2xx
// responses are *chatmbti.TransportError; an unparseable 2xx body is
// *chatmbti.MalformedResponseError.
func (a *Analyzer) Analyze(ctx context.Context, s chatmbti.Submission) (*chatmbti.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	contents, err := readFiles(ctx, s.Files)
	if err != nil {
		return nil, err
	}

	body, contentType, err := buildForm(s, contents)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(a.baseURL, AnalyzePath)
	if err != nil {
		return nil, fmt.Errorf("build URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("submitting analysis",
		zap.String("url", endpoint),
		zap.Int("files", len(s.Files)),
		zap.Int("bytes", body.Len()),
	)
	start := time.Now()

	data, err := a.do(req)
	if err != nil {
		a.logger.Warn("analysis request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}
	a.logger.Info("analysis received", zap.Int("bytes", len(data)), zap.Duration("elapsed", time.Since(start)))

	result, err := a.decoder.Decode(data)
	if err != nil {
		return nil, &chatmbti.MalformedResponseError{Err: err}
	}
	return result, nil
}

// Health probes the service and returns its reported status.
func (a *Analyzer) Health(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	endpoint, err := url.JoinPath(a.baseURL, HealthPath)
	if err != nil {
		return "", fmt.Errorf("build URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	data, err := a.do(req)
	if err != nil {
		return "", err
	}
	status := gjson.GetBytes(data, "status").String()
	if status != "ok" {
		return status, fmt.Errorf("%w: status %q", ErrUnhealthy, status)
	}
	return status, nil
}

// do sends req and returns the body of a 2xx response.
func (a *Analyzer) do(req *http.Request) ([]byte, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &chatmbti.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &chatmbti.TransportError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &chatmbti.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	return data, nil
}

// readFiles loads every export concurrently, preserving order.
func readFiles(ctx context.Context, files []chatmbti.File) ([][]byte, error) {
	contents := make([][]byte, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.Path)
			if err != nil {
				return fmt.Errorf("read %s: %w", f.Name(), err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

// buildForm writes every file part followed by the user name field.
func buildForm(s chatmbti.Submission, contents [][]byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, f := range s.Files {
		part, err := w.CreateFormFile(fieldFiles, f.Name())
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(contents[i]); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}
	if err := w.WriteField(fieldUserName, s.UserName); err != nil {
		return nil, "", fmt.Errorf("write user name: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
