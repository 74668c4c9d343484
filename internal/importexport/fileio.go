package importexport

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/moolen/fmea/internal/logging"
	"github.com/moolen/fmea/internal/models"
)

// Load reads a worksheet file. The format follows the extension. Entities
// without an id get a fresh one, see AssignIDs.
func Load(path string) (*models.Worksheet, error) {
	logger := logging.GetLogger("importexport")

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	// #nosec G304 -- worksheet path is user-provided
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	ws, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if n := AssignIDs(ws); n > 0 {
		logger.InfoWithFields("assigned ids to entities without one",
			logging.Field("file", path),
			logging.Field("count", n))
	}
	logger.Debug("loaded %s (%d bytes, %d links)", path, info.Size(), len(ws.Links))
	return ws, nil
}

// Save writes ws to path, replacing the file atomically. The format
// follows the extension.
func Save(path string, ws *models.Worksheet) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Encode(tmp, ws, format); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	logging.GetLogger("importexport").Debug("saved %s (%d links)", path, len(ws.Links))
	return nil
}
