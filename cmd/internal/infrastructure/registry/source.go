package registry

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"companymatch/cmd/internal/infrastructure/aws/storage"
	"companymatch/cmd/internal/utils"
)

var (
	// ErrSourceNotFound means neither a usable local file nor a
	// reachable remote object was found for the configured source.
	ErrSourceNotFound = errors.New("registry source not found")

	// ErrInvalidSource means the resolved source is neither a .csv nor
	// a .zip file.
	ErrInvalidSource = errors.New("registry source must be a .csv or .zip file")
)

const downloadedZipName = "BasicCompanyData.zip"

// ProgressFunc receives download progress. total is 0 when the remote
// does not announce a content length.
type ProgressFunc func(transferred, total int64)

// Resolver turns a configured source (HTTP(S) URL, s3://bucket/key,
// local zip or local csv) into the path of a local CSV file, downloading
// and extracting into the data directory as needed.
type Resolver struct {
	dataDir    string
	httpClient *http.Client
	fetcher    storage.ObjectFetcher
	progress   ProgressFunc
}

// NewResolver builds a resolver writing into dataDir. fetcher may be nil
// when no s3:// sources are configured.
func NewResolver(dataDir string, fetcher storage.ObjectFetcher) *Resolver {
	return &Resolver{
		dataDir:    dataDir,
		httpClient: &http.Client{},
		fetcher:    fetcher,
		progress:   logProgress(),
	}
}

// SetProgress replaces the default (logging) progress callback.
func (r *Resolver) SetProgress(fn ProgressFunc) {
	r.progress = fn
}

// Resolve returns the path of the CSV to load. With force set, cached
// intermediate files are discarded and recreated; otherwise a previously
// extracted CSV is reused.
func (r *Resolver) Resolve(ctx context.Context, source string, force bool) (string, error) {
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return "", err
	}

	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		zipPath := filepath.Join(r.dataDir, downloadedZipName)
		if err := r.downloadHTTP(ctx, source, zipPath); err != nil {
			return "", err
		}
		return r.extractFirst(zipPath, force)

	case strings.HasPrefix(source, "s3://"):
		return r.resolveS3(ctx, source, force)

	default:
		return r.resolveLocal(source, force)
	}
}

func (r *Resolver) resolveLocal(source string, force bool) (string, error) {
	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}

	ext, ok := utils.CheckFileExt(source, []string{"csv", "zip"})
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidSource, source)
	}

	if ext == ".zip" {
		return r.extractFirst(source, force)
	}
	return source, nil
}

func (r *Resolver) resolveS3(ctx context.Context, source string, force bool) (string, error) {
	if r.fetcher == nil {
		return "", errors.New("s3 source configured but no object fetcher is available")
	}

	bucket, key, err := splitS3URI(source)
	if err != nil {
		return "", err
	}

	ext, ok := utils.CheckFileExt(key, []string{"csv", "zip"})
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidSource, source)
	}

	body, total, err := r.fetcher.FetchObject(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceNotFound, source, err)
	}
	defer body.Close()

	dest := filepath.Join(r.dataDir, filepath.Base(key))
	if err := r.writeWithProgress(dest, body, total); err != nil {
		return "", err
	}

	if ext == ".zip" {
		return r.extractFirst(dest, force)
	}
	return dest, nil
}

func (r *Resolver) downloadHTTP(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceNotFound, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d", ErrSourceNotFound, url, resp.StatusCode)
	}

	log.Infof("Downloading %s to %s", url, dest)
	return r.writeWithProgress(dest, resp.Body, resp.ContentLength)
}

func (r *Resolver) writeWithProgress(dest string, body io.Reader, total int64) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	src := body
	if r.progress != nil {
		src = &progressReader{r: body, total: total, fn: r.progress}
	}

	if _, err := io.Copy(f, src); err != nil {
		// Do not leave a truncated download behind.
		os.Remove(dest)
		return err
	}
	return nil
}

// extractFirst extracts the first entry of the archive into the data
// directory and returns its path. An already extracted file is reused
// unless force is set.
func (r *Resolver) extractFirst(zipPath string, force bool) (string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("open zip %s: %w", zipPath, err)
	}
	defer zr.Close()

	if len(zr.File) == 0 {
		return "", fmt.Errorf("%w: empty archive %s", ErrInvalidSource, zipPath)
	}

	entry := zr.File[0]
	dest := filepath.Join(r.dataDir, filepath.Base(entry.Name))

	if _, err := os.Stat(dest); err == nil {
		if !force {
			log.Infof("Reusing previously extracted %s", dest)
			return dest, nil
		}
		if err := os.Remove(dest); err != nil {
			return "", err
		}
	}

	src, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(dest)
		return "", err
	}

	log.Infof("Extracted %s from %s", dest, zipPath)
	return dest, nil
}

func splitS3URI(source string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(source, "s3://")
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: malformed s3 uri %s", ErrInvalidSource, source)
	}
	return bucket, key, nil
}

type progressReader struct {
	r           io.Reader
	total       int64
	transferred int64
	fn          ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.transferred += int64(n)
		p.fn(p.transferred, p.total)
	}
	return n, err
}

// logProgress logs transfer progress at most every few seconds.
func logProgress() ProgressFunc {
	var last time.Time
	return func(transferred, total int64) {
		if time.Since(last) < 5*time.Second {
			return
		}
		last = time.Now()
		if total > 0 {
			log.Infof("Downloaded %d / %d bytes (%.1f%%)", transferred, total, float64(transferred)/float64(total)*100)
		} else {
			log.Infof("Downloaded %d bytes", transferred)
		}
	}
}
