package services

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/config"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
)

// Storage layout contract: originals live directly under the upload root,
// width-bounded derivatives under rescaled/, profile pictures under
// profilepics/, and files pending permanent removal under deleted/.

func UploadRoot() string {
	return config.AppConfig.UploadDir
}

func RescaledDir() string {
	return filepath.Join(UploadRoot(), "rescaled")
}

func ProfilePicsDir() string {
	return filepath.Join(UploadRoot(), "profilepics")
}

func DeletedDir() string {
	return filepath.Join(UploadRoot(), "deleted")
}

// EnsureStorageLayout creates the storage directories and purges the
// retention area. Idempotent; called once before the server accepts
// requests.
func EnsureStorageLayout() error {
	for _, dir := range []string{UploadRoot(), RescaledDir(), ProfilePicsDir(), DeletedDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}

	// Files parked in the retention area on a previous run are now fair game.
	entries, err := os.ReadDir(DeletedDir())
	if err != nil {
		return fmt.Errorf("read retention dir: %w", err)
	}
	for _, entry := range entries {
		path := filepath.Join(DeletedDir(), entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Failed to purge retained file")
		}
	}
	if len(entries) > 0 {
		logger.Info().Int("count", len(entries)).Msg("Purged retention area")
	}

	return nil
}

// RetireFile moves a file into the retention area instead of unlinking it.
func RetireFile(srcPath string) error {
	dst := filepath.Join(DeletedDir(), filepath.Base(srcPath))
	return os.Rename(srcPath, dst)
}

// DerivedFileName builds a collision-resistant stored name from a timestamp,
// a random suffix and the original extension, e.g. "file-1712345678901-123456789.png".
func DerivedFileName(prefix, originalName string) string {
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	return fmt.Sprintf("%s-%s%s", prefix, suffix, filepath.Ext(originalName))
}
