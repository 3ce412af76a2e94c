package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tienedev/shipkit-cli/internal/branding"
)

// ErrRegistryUnavailable is returned when the remote registry index cannot
// be fetched or does not decode into a valid Registry.
var ErrRegistryUnavailable = errors.New("registry unavailable")

const (
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 8
	userAgent          = "shipkit-cli"
)

// Client fetches the registry index and module files from either the
// remote registry or a local override directory. The two sources are never
// mixed: when a local path is set every request resolves against it.
type Client struct {
	baseURL     string
	localPath   string
	httpClient  *http.Client
	logger      *slog.Logger
	concurrency int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithBaseURL overrides the remote registry root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLocalPath switches the client to a local registry directory.
func WithLocalPath(dir string) Option {
	return func(c *Client) {
		c.localPath = dir
	}
}

// WithLogger sets the logger used for dropped-file warnings and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConcurrency bounds the number of manifest files fetched at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New creates a Client for the default remote registry.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(branding.RegistryURL(), "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      slog.Default(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsLocal reports whether the client reads from a local registry directory.
func (c *Client) IsLocal() bool {
	return c.localPath != ""
}

// Location returns the registry root the client resolves against.
func (c *Client) Location() string {
	if c.IsLocal() {
		return c.localPath
	}
	return c.baseURL
}

// FetchRegistry returns the registry index.
//
// In local mode, read and decode failures are returned as-is. In remote
// mode every failure wraps ErrRegistryUnavailable.
func (c *Client) FetchRegistry(ctx context.Context) (*Registry, error) {
	if c.IsLocal() {
		return c.fetchLocalRegistry()
	}

	u, err := c.url(IndexFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	data, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	reg, err := DecodeRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	c.logger.Debug("fetched registry", "url", u, "version", reg.Version, "modules", len(reg.Modules))
	return reg, nil
}

// FetchModuleFiles returns the files of the module at modulePath. It never
// fails: unreachable files are logged and omitted, so the result may be
// empty.
func (c *Client) FetchModuleFiles(ctx context.Context, modulePath string) FileSet {
	if c.IsLocal() {
		return c.fetchLocalModuleFiles(modulePath)
	}

	files := FileSet{}
	log := c.logger.With("module_path", modulePath)

	manifest, err := c.fetchManifest(ctx, modulePath)
	if err != nil {
		log.Debug("no manifest, treating module as a single file", "error", err)

		name := path.Base(modulePath)
		u, err := c.url(modulePath)
		if err == nil {
			var data []byte
			if data, err = c.get(ctx, u); err == nil {
				files[name] = string(data)
				return files
			}
		}
		log.Warn("dropping module file", "file", name, "error", err)
		return files
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(c.concurrency)

	for _, name := range manifest.Files {
		if !IsSafeRelPath(name) {
			log.Warn("dropping module file", "file", name, "error", "unsafe file name")
			continue
		}
		g.Go(func() error {
			u, err := c.url(modulePath, name)
			if err == nil {
				var data []byte
				if data, err = c.get(ctx, u); err == nil {
					mu.Lock()
					files[name] = string(data)
					mu.Unlock()
					return nil
				}
			}
			// A failed file never cancels its siblings.
			log.Warn("dropping module file", "file", name, "error", err)
			return nil
		})
	}
	_ = g.Wait()

	return files
}

func (c *Client) fetchManifest(ctx context.Context, modulePath string) (*Manifest, error) {
	u, err := c.url(modulePath, ManifestFile)
	if err != nil {
		return nil, err
	}
	data, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return DecodeManifest(data)
}

// url joins elems onto the base URL.
func (c *Client) url(elems ...string) (string, error) {
	u, err := url.JoinPath(c.baseURL, elems...)
	if err != nil {
		return "", fmt.Errorf("building registry URL: %w", err)
	}
	return u, nil
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: HTTP %d %s", u, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
