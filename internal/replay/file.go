package replay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileVersion is the current replay file format version.
const FileVersion = 1

// File is the YAML document written by export and read by import.
type File struct {
	Version int    `yaml:"version"`
	Replay  Record `yaml:"replay"`
}

// Marshal encodes a record as a replay file.
func Marshal(rec Record) ([]byte, error) {
	data, err := yaml.Marshal(File{Version: FileVersion, Replay: rec})
	if err != nil {
		return nil, fmt.Errorf("replay: marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a replay file and checks that its trace parses.
func Unmarshal(data []byte) (Record, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Record{}, fmt.Errorf("replay: parse: %w", err)
	}
	if f.Version != FileVersion {
		return Record{}, fmt.Errorf("replay: unsupported file version %d", f.Version)
	}
	if _, err := DecodeTrace(f.Replay.Trace); err != nil {
		return Record{}, err
	}
	return f.Replay, nil
}

// WriteFile exports a record to path.
func WriteFile(path string, rec Record) error {
	data, err := Marshal(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return nil
}

// ReadFile imports a record from path.
func ReadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("replay: cannot read %s: %w", path, err)
	}
	return Unmarshal(data)
}
