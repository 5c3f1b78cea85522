// Package cache persists sweep results on disk so that a sweep over the same
// range can be skipped on the next run.
//
// Layout: {dataDir}/{loopCount}/ holds contains_x_{n}, contains_y_{n},
// doesnt_contain_x_{n}, doesnt_contain_y_{n} and manifest_{n}.yaml, where n
// is the number of moduli in the range.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/logging"
	"github.com/agbru/fibperiod/internal/orchestration"
)

const (
	tmpExtension = ".tmp"
	dirPerm      = 0o750
	filePerm     = 0o644
)

// Artifact file name prefixes.
const (
	CoversXPrefix  = "contains_x_"
	CoversYPrefix  = "contains_y_"
	MissesXPrefix  = "doesnt_contain_x_"
	MissesYPrefix  = "doesnt_contain_y_"
	ManifestPrefix = "manifest_"
)

// Store is a directory-backed orchestration.ResultStore.
type Store struct {
	dataDir string
	logger  logging.Logger
	now     func() time.Time
}

// Verify interface compliance.
var _ orchestration.ResultStore = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l logging.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source for manifest timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore returns a store rooted at dataDir. The directory is created lazily
// on the first Save.
func NewStore(dataDir string, opts ...StoreOption) *Store {
	s := &Store{dataDir: dataDir, logger: logging.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the artifact directory for rng.
func (s *Store) Dir(rng orchestration.Range) string {
	return filepath.Join(s.dataDir, strconv.FormatUint(rng.LoopCount(), 10))
}

func (s *Store) path(rng orchestration.Range, prefix string) string {
	name := prefix + strconv.FormatUint(rng.LoopCount(), 10)
	if prefix == ManifestPrefix {
		name += ".yaml"
	}
	return filepath.Join(s.Dir(rng), name)
}

// Exists reports whether a complete artifact for rng is stored. The
// contains_x file gates presence; when a manifest is present its range must
// match rng exactly. A corrupt manifest counts as a miss.
func (s *Store) Exists(rng orchestration.Range) (bool, error) {
	gate := s.path(rng, CoversXPrefix)
	if _, err := os.Stat(gate); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperrors.NewIOError("stat cache", gate, err)
	}

	manifestPath := s.path(rng, ManifestPrefix)
	m, err := readManifest(manifestPath)
	switch {
	case err == nil:
		if !m.Matches(rng.Start, rng.End) {
			s.logger.Debug("cache artifact belongs to another range",
				logging.String("dir", s.Dir(rng)),
				logging.Uint64("cached_start", m.RangeStart),
				logging.Uint64("cached_end", m.RangeEnd))
			return false, nil
		}
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("cache artifact has no manifest", logging.String("dir", s.Dir(rng)))
	case errors.Is(err, ErrCorruptArtifact):
		s.logger.Debug("ignoring corrupt cache manifest", logging.String("path", manifestPath), logging.Err(err))
		return false, nil
	default:
		return false, apperrors.NewIOError("read manifest", manifestPath, err)
	}
	return true, nil
}

// Load reads the four arrays stored for rng.
func (s *Store) Load(rng orchestration.Range) (orchestration.ResultArrays, error) {
	var arrays orchestration.ResultArrays
	targets := []struct {
		prefix string
		dst    *[]uint64
	}{
		{CoversXPrefix, &arrays.CoversX},
		{CoversYPrefix, &arrays.CoversY},
		{MissesXPrefix, &arrays.MissesX},
		{MissesYPrefix, &arrays.MissesY},
	}
	for _, t := range targets {
		path := s.path(rng, t.prefix)
		data, err := os.ReadFile(path)
		if err != nil {
			return orchestration.ResultArrays{}, apperrors.NewIOError("load cache", path, err)
		}
		values, err := DecodeArray(data)
		if err != nil {
			return orchestration.ResultArrays{}, apperrors.NewIOError("load cache", path, err)
		}
		*t.dst = values
	}
	if err := arrays.Validate(); err != nil {
		return orchestration.ResultArrays{}, apperrors.NewIOError("load cache", s.Dir(rng),
			fmt.Errorf("%w: %v", ErrCorruptArtifact, err))
	}
	s.logger.Debug("loaded cached sweep",
		logging.String("dir", s.Dir(rng)),
		logging.Int("covers", arrays.Covers()),
		logging.Int("misses", arrays.Misses()))
	return arrays, nil
}

// Save writes all arrays and the manifest. Every file goes to a temporary
// name first; renames happen only once all writes succeeded, with contains_x
// last, so an interrupted save never leaves a gating file without its
// companions.
func (s *Store) Save(rng orchestration.Range, arrays orchestration.ResultArrays) error {
	if err := arrays.Validate(); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	dir := s.Dir(rng)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return apperrors.NewIOError("create cache dir", dir, err)
	}

	manifest, err := encodeManifest(Manifest{
		Version:    manifestVersion,
		RangeStart: rng.Start,
		RangeEnd:   rng.End,
		LoopCount:  rng.LoopCount(),
		Covers:     arrays.Covers(),
		Misses:     arrays.Misses(),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return err
	}

	// Rename order: the gating contains_x file must come last.
	files := []struct {
		path string
		data func() ([]byte, error)
	}{
		{s.path(rng, MissesXPrefix), func() ([]byte, error) { return EncodeArray(arrays.MissesX) }},
		{s.path(rng, MissesYPrefix), func() ([]byte, error) { return EncodeArray(arrays.MissesY) }},
		{s.path(rng, CoversYPrefix), func() ([]byte, error) { return EncodeArray(arrays.CoversY) }},
		{s.path(rng, ManifestPrefix), func() ([]byte, error) { return manifest, nil }},
		{s.path(rng, CoversXPrefix), func() ([]byte, error) { return EncodeArray(arrays.CoversX) }},
	}

	written := make([]string, 0, len(files))
	cleanup := func() {
		for _, p := range written {
			_ = os.Remove(p)
		}
	}
	for _, f := range files {
		data, err := f.data()
		if err != nil {
			cleanup()
			return apperrors.NewIOError("encode cache", f.path, err)
		}
		tmp := f.path + tmpExtension
		if err := os.WriteFile(tmp, data, filePerm); err != nil {
			cleanup()
			return apperrors.NewIOError("write cache", tmp, err)
		}
		written = append(written, tmp)
	}
	// Drop any previous gate first so that a crash between renames cannot
	// pair an old contains_x with new companions.
	gate := s.path(rng, CoversXPrefix)
	if err := os.Remove(gate); err != nil && !errors.Is(err, fs.ErrNotExist) {
		cleanup()
		return apperrors.NewIOError("replace cache", gate, err)
	}
	for _, f := range files {
		if err := os.Rename(f.path+tmpExtension, f.path); err != nil {
			cleanup()
			return apperrors.NewIOError("commit cache", f.path, err)
		}
	}

	s.logger.Debug("saved sweep to cache",
		logging.String("dir", dir),
		logging.Int("covers", arrays.Covers()),
		logging.Int("misses", arrays.Misses()))
	return nil
}
