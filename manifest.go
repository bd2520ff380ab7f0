package main

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const manifestVersion = 1

// TargetRecord is a manifest entry for one expanded target.
type TargetRecord struct {
	Environment        string `json:"environment"`
	Platform           string `json:"platform"`
	Toolset            string `json:"toolset"`
	Optimization       string `json:"optimization"`
	GraphicsApi        string `json:"graphics_api"`
	Config             string `json:"config"`
	PlatformNameNeeded bool   `json:"platform_name_needed"`
	ProjectDir         string `json:"project_dir"`
	BinDir             string `json:"bin_dir"`
}

// NewTargetRecord converts `t` to its manifest entry.
func NewTargetRecord(t Target) TargetRecord {
	return TargetRecord{
		Environment:        t.Environment.String(),
		Platform:           t.Platform.String(),
		Toolset:            t.Toolset.String(),
		Optimization:       t.Optimization.String(),
		GraphicsApi:        t.GraphicsApi.String(),
		Config:             t.ConfigName(),
		PlatformNameNeeded: t.IsPlatformNameNeeded(),
		ProjectDir:         t.ProjectDirName(),
		BinDir:             t.BinDirName(),
	}
}

// Manifest is the generator output consumed by project emitters.
type Manifest struct {
	Generator string                  `json:"generator"`
	Version   int                     `json:"version"`
	Root      string                  `json:"root"`
	Targets   []TargetRecord          `json:"targets"`
	Projects  []ProjectConfiguration  `json:"projects"`
	Solutions []SolutionConfiguration `json:"solutions"`
}

// BuildManifest configures every project and solution of `cfg` for each target.
func BuildManifest(cfg *Config, targets []Target, layout Layout, policy Policy) (*Manifest, error) {
	m := &Manifest{
		Generator: "targetgen " + targetgenVersion,
		Version:   manifestVersion,
		Root:      layout.root(),
		Targets:   make([]TargetRecord, 0, len(targets)),
		Projects:  []ProjectConfiguration{},
		Solutions: []SolutionConfiguration{},
	}
	for _, t := range targets {
		m.Targets = append(m.Targets, NewTargetRecord(t))
	}
	for _, p := range cfg.Projects {
		for _, t := range targets {
			conf, err := ConfigureProject(layout, p, t, policy)
			if err != nil {
				return nil, err
			}
			m.Projects = append(m.Projects, conf)
		}
	}
	for _, s := range cfg.Solutions {
		s.Projects = cfg.SolutionProjects(s)
		for _, t := range targets {
			conf, err := ConfigureSolution(layout, s, t)
			if err != nil {
				return nil, err
			}
			m.Solutions = append(m.Solutions, conf)
		}
	}
	return m, nil
}

// MarshalManifest renders `m` as indented JSON.
func MarshalManifest(m *Manifest) ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal manifest")
	}
	return append(b, '\n'), nil
}

// WriteManifest writes `m` to output.
func WriteManifest(output io.Writer, m *Manifest) error {
	b, err := MarshalManifest(m)
	if err != nil {
		return err
	}
	cnt, err := output.Write(b)
	if err != nil {
		return errors.Wrapf(err, "failed to write manifest")
	}
	if cnt != len(b) {
		return errors.Wrapf(io.ErrShortWrite, "failed to write manifest")
	}
	return nil
}

// CreateManifestFile atomically replaces `outPath` with `m`.
func CreateManifestFile(outPath string, m *Manifest) error {
	out := NewTransientOutput(outPath)
	defer out.Abort()
	if err := WriteManifest(out, m); err != nil {
		return errors.Wrapf(err, "failed to write \"%s\"", outPath)
	}
	return out.Commit()
}
