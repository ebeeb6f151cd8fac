package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"immojobs-engine/internal/domain"
)

// interruptedMaxAge is how long interrupted_* snapshots stick around.
const interruptedMaxAge = 7 * 24 * time.Hour

// FailsafePath is the crash-recovery twin of an output file.
func FailsafePath(dataDir, filename string) string {
	return filepath.Join(dataDir, "failsafe_"+filename)
}

// SaveInterrupted snapshots the collection when a run is cancelled and
// returns the snapshot path.
func SaveInterrupted(dataDir string, jobs []domain.Job) (string, error) {
	path := filepath.Join(dataDir, fmt.Sprintf("interrupted_scraper_%d.json", time.Now().Unix()))
	if err := SaveJSON(path, jobs); err != nil {
		return "", err
	}
	return path, nil
}

// CleanupInterrupted removes interrupted_* snapshots older than a
// week. Best effort; failures are logged, not returned.
func CleanupInterrupted(dataDir string) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		log.Printf("[store] cleanup readdir: %v", err)
		return
	}

	cutoff := time.Now().Add(-interruptedMaxAge)
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "interrupted_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dataDir, name)); err != nil {
			log.Printf("[store] cleanup remove %s: %v", name, err)
			continue
		}
		log.Printf("[store] removed old snapshot %s", name)
	}
}
