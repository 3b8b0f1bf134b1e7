package jobs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"

	"companymatch/cmd/internal/utils"
)

const (
	// Snapshot artifacts (downloaded zips, extracted CSVs) are only
	// useful until the next monthly publication.
	ArtifactTTL   = 45 * 24 * time.Hour
	CleanInterval = 12 * time.Hour
)

// DownloadCacheCleaner sweeps stale snapshot artifacts out of the data
// directory. The built database file lives elsewhere and is untouched.
type DownloadCacheCleaner struct {
	dataDir string
}

func NewDownloadCacheCleaner(dataDir string) *DownloadCacheCleaner {
	return &DownloadCacheCleaner{dataDir: dataDir}
}

func (c *DownloadCacheCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(CleanInterval)
	defer ticker.Stop()

	log.Info("Download cache cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping download cache cleaner...")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *DownloadCacheCleaner) cleanup() {
	entries, err := os.ReadDir(c.dataDir)
	if err != nil {
		log.Errorf("Cleaner: failed to read data dir %s: %v", c.dataDir, err)
		return
	}

	cutoff := time.Now().Add(-ArtifactTTL)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := utils.CheckFileExt(entry.Name(), []string{"csv", "zip"}); !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(c.dataDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Errorf("Cleaner: failed to remove stale artifact %s: %v", path, err)
			continue
		}
		log.Debugf("Cleaner: removed stale artifact %s", path)
	}
}
