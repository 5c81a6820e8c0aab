// SPDX-License-Identifier: MIT
package spectral

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Checkpoint is the persisted state of a batched extraction: the ordered
// converged eigenvalues under a key identifying the operator configuration.
// JSON keeps floats at shortest round-trip precision, so values survive a
// save/load cycle bit-for-bit.
type Checkpoint struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

// LoadCheckpoint reads the checkpoint at path. A missing, unreadable,
// unparseable, mismatched-key, or unsorted checkpoint loads as empty — the
// batch restarts from scratch rather than aborting or trusting bad state.
func LoadCheckpoint(path, key string) []float64 {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var ck Checkpoint
	if err := json.Unmarshal(raw, &ck); err != nil {
		return nil
	}
	if ck.Key != key {
		return nil
	}
	if !sort.Float64sAreSorted(ck.Values) {
		return nil
	}

	return ck.Values
}

// SaveCheckpoint atomically persists the converged values: the payload is
// written to a temp file in the target directory and renamed over path, so
// a crash mid-write never leaves a truncated checkpoint a resume would
// misread as complete.
func SaveCheckpoint(path, key string, values []float64) error {
	payload, err := json.Marshal(Checkpoint{Key: key, Values: values})
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ckpt-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	return os.Rename(tmpName, path)
}
