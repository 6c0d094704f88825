// Package store provides the durable birthday store: a JSON file mapping
// group names to records, loaded at startup and persisted synchronously
// after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	// ErrUnauthorized is returned when a sender without authorization tries
	// to overwrite an existing record.
	ErrUnauthorized = errors.New("not authorized to modify existing record")

	// ErrNotFound is returned when the named record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Store defines the operations available on the birthday store.
type Store interface {
	// AddOrUpdate inserts a record, or overwrites the date of an existing
	// one. Names are unique across all groups, compared case-insensitively.
	// Anyone may create a record; overwriting a different date requires
	// authorization. Re-adding an identical record is a no-op.
	AddOrUpdate(group, name string, date Date, authorized bool) (AddOutcome, error)

	// Delete removes the record with the given name from whichever group
	// holds it. Returns ErrNotFound if no such record exists. Authorization
	// is the caller's responsibility.
	Delete(name string) error

	// ListAll returns all groups sorted by group name, records in stored order.
	ListAll() []Group

	// ListMissing returns all records without a birthdate.
	ListMissing() []Missing

	// ListUpcoming returns records whose next birthday falls within
	// windowDays of today (inclusive, zero meaning today only), sorted by
	// days until then by name. The year boundary wraps.
	ListUpcoming(today time.Time, windowDays int) []Upcoming
}

type fileStore struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	groups map[string][]Record
}

// New opens the birthday store at path. A missing file bootstraps an empty
// store which is persisted immediately. A corrupt file is renamed aside so
// its contents are not lost, and the store starts empty.
func New(path string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &fileStore{
		path:   path,
		logger: logger.With("component", "store"),
		groups: make(map[string][]Record),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("Birthday file not found, creating a new one", "path", s.path)
		return s.save()
	}
	if err != nil {
		return fmt.Errorf("failed to read birthday file: %w", err)
	}

	var groups map[string][]Record
	if err := json.Unmarshal(data, &groups); err != nil {
		// Never overwrite unreadable data: move it aside and start empty so
		// the operator can recover it by hand.
		aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(s.path, aside); renameErr != nil {
			return fmt.Errorf("failed to set aside corrupt birthday file: %w", renameErr)
		}
		s.logger.Error("Birthday file is corrupt, moved aside and starting empty",
			"path", s.path, "moved_to", aside, "error", err)
		return s.save()
	}

	if groups == nil {
		groups = make(map[string][]Record)
	}
	s.groups = groups

	s.logger.Info("Loaded birthday groups", "path", s.path, "groups", len(groups))
	return nil
}

// save writes the full mapping atomically: temp file in the same directory,
// fsync, then rename over the target. Callers must hold s.mu (or be the
// only goroutine, during load).
func (s *fileStore) save() error {
	data, err := json.MarshalIndent(s.groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode birthdays: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".birthdays-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace birthday file: %w", err)
	}

	s.logger.Debug("Saved birthday groups", "path", s.path, "groups", len(s.groups))
	return nil
}

// find locates a record by case-insensitive name. Callers must hold s.mu.
func (s *fileStore) find(name string) (group string, idx int, ok bool) {
	for g, records := range s.groups {
		for i, r := range records {
			if strings.EqualFold(r.Name, name) {
				return g, i, true
			}
		}
	}
	return "", 0, false
}

func (s *fileStore) AddOrUpdate(group, name string, date Date, authorized bool) (AddOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, i, ok := s.find(name); ok {
		existing := s.groups[g][i]
		if existing.Date != nil && existing.Date.Equal(date.Time) {
			return AddUnchanged, nil
		}
		if !authorized {
			return 0, ErrUnauthorized
		}
		d := date
		s.groups[g][i].Date = &d
		if err := s.save(); err != nil {
			return 0, err
		}
		s.logger.Info("Updated birthday", "name", existing.Name, "group", g, "date", date.String())
		return AddUpdated, nil
	}

	d := date
	s.groups[group] = append(s.groups[group], Record{Name: name, Date: &d})
	if err := s.save(); err != nil {
		return 0, err
	}
	s.logger.Info("Added birthday", "name", name, "group", group, "date", date.String())
	return AddCreated, nil
}

func (s *fileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, i, ok := s.find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	s.groups[g] = append(s.groups[g][:i], s.groups[g][i+1:]...)
	if len(s.groups[g]) == 0 {
		delete(s.groups, g)
	}
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info("Deleted birthday", "name", name, "group", g)
	return nil
}

func (s *fileStore) ListAll() []Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.groups))
	for g := range s.groups {
		names = append(names, g)
	}
	sort.Strings(names)

	out := make([]Group, 0, len(names))
	for _, g := range names {
		records := make([]Record, len(s.groups[g]))
		copy(records, s.groups[g])
		out = append(out, Group{Name: g, Records: records})
	}
	return out
}

func (s *fileStore) ListMissing() []Missing {
	var out []Missing
	for _, g := range s.ListAll() {
		for _, r := range g.Records {
			if r.Date == nil {
				out = append(out, Missing{Group: g.Name, Name: r.Name})
			}
		}
	}
	return out
}

func (s *fileStore) ListUpcoming(today time.Time, windowDays int) []Upcoming {
	var out []Upcoming
	for _, g := range s.ListAll() {
		for _, r := range g.Records {
			if r.Date == nil {
				continue
			}
			days := r.Date.DaysUntil(today)
			if days <= windowDays {
				out = append(out, Upcoming{
					Name:      r.Name,
					Date:      *r.Date,
					DaysUntil: days,
					Turning:   r.Date.AgeTurning(today),
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysUntil != out[j].DaysUntil {
			return out[i].DaysUntil < out[j].DaysUntil
		}
		return out[i].Name < out[j].Name
	})
	return out
}
