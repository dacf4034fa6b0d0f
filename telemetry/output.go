package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/plexus/config"
)

// OutputManager writes run output: perf.csv, profile.csv and a config
// snapshot.
type OutputManager struct {
	dir         string
	perfFile    *os.File
	profileFile *os.File

	// Track if headers have been written
	perfHeaderWritten    bool
	profileHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "profile.csv"))
	if err != nil {
		om.perfFile.Close()
		return nil, fmt.Errorf("creating profile.csv: %w", err)
	}
	om.profileFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(rec PerfStatsCSV) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.perfFile, &om.perfHeaderWritten, []PerfStatsCSV{rec}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteProfile appends a profile record to profile.csv.
func (om *OutputManager) WriteProfile(rec ProfileRecord) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.profileFile, &om.profileHeaderWritten, []ProfileRecord{rec}); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// writeRecords marshals records, including the header only on first write.
func writeRecords(f *os.File, headerWritten *bool, records any) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.perfFile, om.profileFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
