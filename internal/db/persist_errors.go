package db

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const persistErrorsFile = DirName + "/errors.jsonl"

// PersistError records a failed read or write of workspace state
type PersistError struct {
	Timestamp time.Time `json:"ts"`
	Op        string    `json:"op"`
	Key       string    `json:"key,omitempty"`
	Error     string    `json:"error"`
	SessionID string    `json:"session,omitempty"`
}

// LogPersistError appends a persistence failure to the workspace error log.
// If the .wsmark directory doesn't exist, the entry is silently dropped.
func LogPersistError(baseDir string, entry PersistError) error {
	errPath := filepath.Join(baseDir, persistErrorsFile)

	if _, err := os.Stat(filepath.Dir(errPath)); os.IsNotExist(err) {
		return nil
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(errPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadPersistErrors reads logged failures newest first. limit <= 0 means all.
func ReadPersistErrors(baseDir string, limit int) ([]PersistError, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, persistErrorsFile))
	if os.IsNotExist(err) {
		return []PersistError{}, nil
	}
	if err != nil {
		return nil, err
	}

	all := parsePersistErrors(data)
	out := make([]PersistError, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ClearPersistErrors removes the error log
func ClearPersistErrors(baseDir string) error {
	err := os.Remove(filepath.Join(baseDir, persistErrorsFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// parsePersistErrors parses JSONL, skipping malformed lines
func parsePersistErrors(data []byte) []PersistError {
	var entries []PersistError
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var e PersistError
		if err := json.Unmarshal(line, &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}
