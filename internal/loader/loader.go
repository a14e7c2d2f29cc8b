package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// defaultMaxBody caps how much of a remote resource is read.
const defaultMaxBody = 64 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader retrieves CSV text from a URL or a local path.
type Loader struct {
	httpClient *http.Client
	encoding   string
	maxBody    int64
	log        zerolog.Logger
}

// New returns a Loader with the given HTTP timeout and text encoding
// ("", "utf-8", "latin1", "windows-1252").
func New(timeout time.Duration, enc string, log zerolog.Logger) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		encoding:   enc,
		maxBody:    defaultMaxBody,
		log:        log,
	}
}

// Fetch returns the full decoded text at locator.
func (l *Loader) Fetch(ctx context.Context, locator string) (string, error) {
	var (
		b   []byte
		err error
	)
	start := time.Now()
	if isRemote(locator) {
		b, err = l.fetchHTTP(ctx, locator)
	} else {
		b, err = l.readFile(ctx, locator)
	}
	if err != nil {
		l.log.Warn().Err(err).Str("locator", locator).Msg("fetch failed")
		return "", err
	}
	text, err := decode(b, l.encoding)
	if err != nil {
		return "", &FetchError{Kind: KindNetwork, Locator: locator, Err: err}
	}
	l.log.Debug().Str("locator", locator).Int("bytes", len(b)).Dur("took", time.Since(start)).Msg("fetched")
	return text, nil
}

func isRemote(locator string) bool {
	lower := strings.ToLower(locator)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Locator: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classify(ctx, err), Locator: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &FetchError{
			Kind:    KindNetwork,
			Locator: url,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet))),
		}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBody+1))
	if err != nil {
		return nil, &FetchError{Kind: classify(ctx, err), Locator: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(b)) > l.maxBody {
		return nil, &FetchError{Kind: KindNetwork, Locator: url, Err: fmt.Errorf("body exceeds %d bytes", l.maxBody)}
	}
	return b, nil
}

func (l *Loader) readFile(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Kind: classify(ctx, err), Locator: locator, Err: err}
	}
	path := strings.TrimPrefix(locator, "file://")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Locator: locator, Err: fmt.Errorf("read file: %w", err)}
	}
	return b, nil
}

func classify(ctx context.Context, err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

func decode(b []byte, enc string) (string, error) {
	var dec *encoding.Decoder
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		return string(bytes.TrimPrefix(b, utf8BOM)), nil
	case "latin1", "iso-8859-1":
		dec = charmap.ISO8859_1.NewDecoder()
	case "windows-1252", "cp1252":
		dec = charmap.Windows1252.NewDecoder()
	default:
		return "", fmt.Errorf("unsupported encoding: %s", enc)
	}
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), nil
}

// ValidEncoding reports whether enc is accepted by New.
func ValidEncoding(enc string) bool {
	_, err := decode(nil, enc)
	return err == nil
}
