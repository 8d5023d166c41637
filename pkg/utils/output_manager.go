package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// OutputManager lays out saved exports as <root>/<dataset id>/<file>.
type OutputManager struct {
	Root string
}

func NewOutputManager(root string) *OutputManager {
	return &OutputManager{Root: root}
}

// DatasetDir creates and returns the export directory of one dataset.
// Only the last element of datasetID is used, so ids cannot climb out of Root.
func (om *OutputManager) DatasetDir(datasetID string) (string, error) {
	dir := filepath.Join(om.Root, filepath.Base(datasetID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return dir, nil
}

// Path returns where fileName is saved for datasetID, creating the directory.
func (om *OutputManager) Path(datasetID, fileName string) (string, error) {
	dir, err := om.DatasetDir(datasetID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// FileName builds a timestamped export name such as counts_2024-01-02_15-04-05.csv
func (om *OutputManager) FileName(format string, now time.Time) string {
	return fmt.Sprintf("counts_%s.%s", now.Format("2006-01-02_15-04-05"), format)
}
