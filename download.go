package yt_thumbnail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

var (
	ErrHTTPStatus      = errors.New("unexpected HTTP status")
	ErrInvalidFilename = errors.New("invalid filename")
)

type Download interface {
	// AddDownloadedBytes increases how many bytes have been successfully downloaded so far.
	AddDownloadedBytes(n int)

	// AddExpectedBytes increases how many bytes are expected to be downloaded.
	AddExpectedBytes(n int)

	// Cancel the Download, stopping any in-progress I/O activity.
	Cancel()

	// Close releases the Download's context.
	Close() error

	// Context is the cancellable context of this Download.
	Context() context.Context

	CreateFile(filename string) (io.WriteCloser, error)

	// Files lists the paths written by SaveStream so far.
	Files() []string

	// Progress returns the downloaded and expected bytes of the download.
	Progress() (int, int)

	// SaveHTTPRequest will execute the http.Request with Context() and then download the resulting stream like
	// SaveStream. Any non-2xx response is an error wrapping ErrHTTPStatus.
	SaveHTTPRequest(filename string, req *http.Request) error

	// SaveStream will download the stream to the named file, calling AddDownloadedBytes as necessary.
	SaveStream(filename string, stream io.Reader) error

	// SaveThumbnail fetches the thumbnail and saves it under the name produced by the ThumbnailConfig.
	SaveThumbnail(config ThumbnailConfig, t Thumbnail) (string, error)

	// SaveURL will make a GET request to the URL and then download the resulting stream like SaveStream.
	SaveURL(filename string, url string) error

	// Write will ignore the data but will send the byte count to AddDownloadedBytes. Allows progress tracking using
	// io.MultiWriter (but ensure the Download is the last writer to avoid counting failed writes).
	Write(p []byte) (n int, err error)
}

type download struct {
	ctx              context.Context
	cancel           context.CancelFunc
	client           *http.Client
	progressCallback func(int, int)
	targetDir        string

	mu              sync.Mutex
	expectedBytes   int
	downloadedBytes int
	files           []string
}

func (d *download) AddDownloadedBytes(n int) {
	d.mu.Lock()
	d.downloadedBytes += n
	d.mu.Unlock()
	d.notify()
}

func (d *download) AddExpectedBytes(n int) {
	if n <= 0 {
		// Unknown content length
		return
	}
	d.mu.Lock()
	d.expectedBytes += n
	d.mu.Unlock()
	d.notify()
}

func (d *download) notify() {
	if d.progressCallback != nil {
		d.progressCallback(d.Progress())
	}
}

func (d *download) Cancel() {
	d.cancel()
}

func (d *download) Close() error {
	d.cancel()
	return nil
}

func (d *download) Context() context.Context {
	return d.ctx
}

func (d *download) CreateFile(filename string) (io.WriteCloser, error) {
	if filename == "" || filename == "." || filename == ".." || filename != filepath.Base(filename) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	if err := os.MkdirAll(d.targetDir, 0775); err != nil {
		return nil, err
	}
	return os.Create(d.targetPath(filename))
}

func (d *download) Files() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.files...)
}

func (d *download) Progress() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.downloadedBytes, d.expectedBytes
}

func (d *download) SaveHTTPRequest(filename string, req *http.Request) error {
	if req == nil {
		return fmt.Errorf("nil request")
	}
	req = req.WithContext(d.Context())
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	d.AddExpectedBytes(int(resp.ContentLength))
	return d.SaveStream(filename, resp.Body)
}

func (d *download) SaveStream(filename string, stream io.Reader) error {
	f, err := d.CreateFile(filename)
	if err != nil {
		return fmt.Errorf("failed to open target file: %w", err)
	}

	_, err = io.Copy(io.MultiWriter(f, d), &readerContext{ctx: d.ctx, r: stream})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Don't leave a truncated file behind
		_ = os.Remove(d.targetPath(filename))
		return fmt.Errorf("failed to save stream: %w", err)
	}
	d.mu.Lock()
	d.files = append(d.files, d.targetPath(filename))
	d.mu.Unlock()
	return nil
}

func (d *download) SaveThumbnail(config ThumbnailConfig, t Thumbnail) (string, error) {
	filename, err := config.Filename(t)
	if err != nil {
		return "", fmt.Errorf("failed to build filename: %w", err)
	}
	if err := d.SaveURL(filename, t.URL); err != nil {
		return "", err
	}
	return d.targetPath(filename), nil
}

func (d *download) SaveURL(filename string, url string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return d.SaveHTTPRequest(filename, req)
}

func (d *download) Write(p []byte) (n int, err error) {
	n = len(p)
	d.AddDownloadedBytes(n)
	return n, nil
}

func (d *download) targetPath(filename string) string {
	return filepath.Join(d.targetDir, filename)
}

type DownloadBuilder interface {
	Build() (Download, error)
	WithContext(ctx context.Context) DownloadBuilder
	WithHTTPClient(client *http.Client) DownloadBuilder
	WithProgressCallback(f func(downloaded int, expected int)) DownloadBuilder
	WithTargetDir(dir string) DownloadBuilder
}

type downloadBuilder struct {
	ctx              context.Context
	client           *http.Client
	progressCallback func(int, int)
	targetDir        string
}

func NewDownloadBuilder() DownloadBuilder {
	return &downloadBuilder{
		ctx:       context.Background(),
		client:    http.DefaultClient,
		targetDir: ".",
	}
}

func (b *downloadBuilder) Build() (Download, error) {
	if b.targetDir == "" {
		return nil, fmt.Errorf("empty target directory")
	}
	d := download{}
	d.ctx, d.cancel = context.WithCancel(b.ctx)
	d.client = b.client
	d.progressCallback = b.progressCallback
	d.targetDir = b.targetDir
	return &d, nil
}

func (b *downloadBuilder) WithContext(ctx context.Context) DownloadBuilder {
	b.ctx = ctx
	return b
}

func (b *downloadBuilder) WithHTTPClient(client *http.Client) DownloadBuilder {
	b.client = client
	return b
}

func (b *downloadBuilder) WithProgressCallback(f func(int, int)) DownloadBuilder {
	b.progressCallback = f
	return b
}

func (b *downloadBuilder) WithTargetDir(dir string) DownloadBuilder {
	b.targetDir = dir
	return b
}
