package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Record is the local account of a run written to dist/<version>/release.yaml.
// It is never uploaded.
type Record struct {
	RunID     string        `yaml:"run_id"`
	Version   string        `yaml:"version"`
	Tag       string        `yaml:"tag"`
	Branch    string        `yaml:"branch"`
	Commits   []Commit      `yaml:"commits"`
	Images    []RecordImage `yaml:"images,omitempty"`
	Artifacts []Artifact    `yaml:"artifacts,omitempty"`
	Release   string        `yaml:"release,omitempty"`
	Notes     []string      `yaml:"notes,omitempty"`
}

// RecordImage lists every reference one image was tagged with.
type RecordImage struct {
	Name string   `yaml:"name"`
	Refs []string `yaml:"refs"`
}

// NewRecord captures res.
func NewRecord(res *Result) Record {
	rec := Record{
		RunID:     res.RunID,
		Version:   res.Version.String(),
		Tag:       res.Tag,
		Branch:    res.Branch,
		Commits:   res.Commits,
		Artifacts: res.Artifacts,
		Release:   res.Release.HTMLURL,
		Notes:     res.Notes,
	}
	for _, img := range res.Images {
		rec.Images = append(rec.Images, RecordImage{Name: img.Name, Refs: img.Refs})
	}
	return rec
}

// WriteRecord writes rec as YAML, replacing any earlier record.
func WriteRecord(path string, rec Record) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding release record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding release record: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadRecord reads a record written by WriteRecord.
func LoadRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing release record %s: %w", path, err)
	}
	return rec, nil
}
