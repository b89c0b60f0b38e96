package stoier

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// SnapshotLayout is the ISO-8601 timestamp used to name snapshots.
const SnapshotLayout = "2006-01-02T15:04:05.000000"

// layouts accepted when resolving snapshot names, most precise first.
var snapshotLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
}

// SnapshotName returns the name of a snapshot taken at now, without extension.
func SnapshotName(now time.Time) string { return now.Format(SnapshotLayout) }

// parseSnapshotName returns the timestamp embedded in a snapshot name.
func parseSnapshotName(name string) (time.Time, bool) {
	for _, layout := range snapshotLayouts {
		if t, err := time.Parse(layout, name); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Snapshots lists the dated entries of dir in chronological order: files
// named after an ISO-8601 timestamp followed by ext, or sub-directories named
// after a timestamp when ext is empty. Other entries are ignored.
func Snapshots(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{What: "snapshot directory " + dir}
		}
		return nil, fmt.Errorf("could not list snapshots in %q: %w", dir, err)
	}
	type snapshot struct {
		name string
		at   time.Time
	}
	var found []snapshot
	for _, e := range entries {
		name := e.Name()
		if ext == "" {
			if !e.IsDir() {
				continue
			}
		} else {
			if e.IsDir() || !strings.HasSuffix(name, ext) {
				continue
			}
			name = strings.TrimSuffix(name, ext)
		}
		if t, ok := parseSnapshotName(name); ok {
			found = append(found, snapshot{e.Name(), t})
		}
	}
	slices.SortStableFunc(found, func(a, b snapshot) int { return a.at.Compare(b.at) })
	res := make([]string, len(found))
	for i, s := range found {
		res[i] = filepath.Join(dir, s.name)
	}
	return res, nil
}

// LatestSnapshot resolves path to a snapshot.
//
// If path is a file it is returned as is. If it is a directory, the entry
// whose name (without ext) is the latest ISO-8601 timestamp is returned.
// An empty ext selects sub-directories instead of files.
// It fails with a NotFoundError if the directory has no dated entry.
func LatestSnapshot(path, ext string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{What: "snapshot " + path}
		}
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	all, err := Snapshots(path, ext)
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", &NotFoundError{What: "dated snapshot in " + path}
	}
	return all[len(all)-1], nil
}

// SaveSnapshot writes a new file snapshot named after now in dir.
//
// The content is written to a temporary file first and renamed once encode
// succeeded, so that a failing stage never leaves a partial snapshot.
func SaveSnapshot(dir string, now time.Time, ext string, encode func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create snapshot directory %q: %w", dir, err)
	}
	target := filepath.Join(dir, SnapshotName(now)+ext)
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("could not create snapshot %q: %w", target, err)
	}
	defer os.Remove(f.Name()) // no-op once renamed
	if err := encode(f); err != nil {
		f.Close()
		return "", fmt.Errorf("could not write snapshot %q: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not write snapshot %q: %w", target, err)
	}
	if err := os.Rename(f.Name(), target); err != nil {
		return "", fmt.Errorf("could not save snapshot %q: %w", target, err)
	}
	return target, nil
}

// SaveSnapshotDir is like SaveSnapshot for stages producing several files:
// fill writes into a temporary directory that is renamed once complete.
func SaveSnapshotDir(dir string, now time.Time, fill func(tmp string) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create snapshot directory %q: %w", dir, err)
	}
	target := filepath.Join(dir, SnapshotName(now))
	tmp, err := os.MkdirTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("could not create snapshot %q: %w", target, err)
	}
	defer os.RemoveAll(tmp) // no-op once renamed
	if err := fill(tmp); err != nil {
		return "", fmt.Errorf("could not write snapshot %q: %w", target, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("could not save snapshot %q: %w", target, err)
	}
	return target, nil
}

// WriteFile creates name and writes it with encode.
func WriteFile(name string, encode func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadLedger decodes the latest ledger snapshot found at path.
func LoadLedger(path string) (*Ledger, string, error) {
	file, err := LatestSnapshot(path, ".json")
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, "", fmt.Errorf("could not open ledger %q: %w", file, err)
	}
	defer f.Close()
	l, err := DecodeLedger(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode ledger %q: %w", file, err)
	}
	return l, file, nil
}

// LoadAssignments decodes the latest assignments snapshot found at path.
func LoadAssignments(path string) (*Assignments, string, error) {
	file, err := LatestSnapshot(path, ".json")
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, "", fmt.Errorf("could not open assignments %q: %w", file, err)
	}
	defer f.Close()
	as, err := DecodeAssignments(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode assignments %q: %w", file, err)
	}
	return as, file, nil
}

// LoadLookup reads a lookup table file. An empty name returns a nil table.
func LoadLookup(name string) (*Lookup, error) {
	if name == "" {
		return nil, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("could not read lookup table: %w", err)
	}
	return DecodeLookup(data)
}

// LoadAccounts decodes every account file (*.json) of an accounts snapshot
// directory, sorted by account name.
func LoadAccounts(dir string) ([]*AccountSnapshot, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var res []*AccountSnapshot
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open account %q: %w", file, err)
		}
		acc, err := DecodeAccount(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not decode account %q: %w", file, err)
		}
		res = append(res, acc)
	}
	// glob is sorted by file name, which is the account name.
	return res, nil
}

// ReadRecords reads a JSONL records file.
func ReadRecords(file string) ([]Record, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open records %q: %w", file, err)
	}
	defer f.Close()
	rr := NewRecordReader(f)
	records := slices.Collect(rr.All())
	if err := rr.Err(); err != nil {
		return nil, fmt.Errorf("could not read records %q: %w", file, err)
	}
	return records, nil
}
