package cache

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// manifestVersion is bumped whenever the array layout changes.
const manifestVersion = 1

// Manifest records the exact range an artifact directory was computed for.
// Directories are keyed only by loop count, so two ranges of equal length
// share a directory; the manifest tells them apart.
type Manifest struct {
	Version    int       `yaml:"version"`
	RangeStart uint64    `yaml:"range_start"`
	RangeEnd   uint64    `yaml:"range_end"`
	LoopCount  uint64    `yaml:"loop_count"`
	Covers     int       `yaml:"covers"`
	Misses     int       `yaml:"misses"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// Matches reports whether the manifest was written for [start, end).
func (m Manifest) Matches(start, end uint64) bool {
	return m.RangeStart == start && m.RangeEnd == end
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: manifest: %v", ErrCorruptArtifact, err)
	}
	return m, nil
}

func encodeManifest(m Manifest) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}
