// Schema definitions for the target settings file.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the top structure of `targets.yml` (or `targets.toml`).
type Config struct {
	Root      string           `yaml:"root" toml:"root"`
	Windows   SelectionNames   `yaml:"windows" toml:"windows"`
	Linux     SelectionNames   `yaml:"linux" toml:"linux"`
	Exclude   []SelectionNames `yaml:"exclude,flow" toml:"exclude"`
	Projects  []Project        `yaml:"projects,flow" toml:"projects"`
	Solutions []Solution       `yaml:"solutions,flow" toml:"solutions"`
}

// SelectionNames lists wanted values by name. A missing list means "everything supported".
type SelectionNames struct {
	Environment  NameList `yaml:"environment" toml:"environment"`
	Platform     NameList `yaml:"platform" toml:"platform"`
	Toolset      NameList `yaml:"toolset" toml:"toolset"`
	Optimization NameList `yaml:"optimization" toml:"optimization"`
	GraphicsApi  NameList `yaml:"graphics_api" toml:"graphics_api"`
}

// Project is a project definition.
type Project struct {
	Name    string   `yaml:"name" toml:"name" json:"name"`
	Type    string   `yaml:"type" toml:"type" json:"type,omitempty"`
	Source  string   `yaml:"source" toml:"source" json:"source,omitempty"`
	Depends NameList `yaml:"depends,flow" toml:"depends" json:"depends,omitempty"`
}

// IsLibrary returns true for `library` projects.
func (p *Project) IsLibrary() bool {
	return strings.EqualFold(p.Type, "library") || strings.EqualFold(p.Type, "lib")
}

// Solution groups projects.
type Solution struct {
	Name     string   `yaml:"name" toml:"name"`
	Projects NameList `yaml:"projects,flow" toml:"projects"`
}

// NameList is a list of names, written as a scalar or a sequence in YAML.
type NameList []string

// UnmarshalYAML is called while unmarshaling NameList.
func (n *NameList) UnmarshalYAML(unmarshaler func(interface{}) error) error {
	var names interface{}
	if err := unmarshaler(&names); err != nil {
		return errors.Wrapf(err, "failed to unmarshal NameList")
	}
	*n = NameList{}
	switch v := names.(type) {
	case string:
		for _, s := range strings.Split(v, "|") {
			if s = strings.TrimSpace(s); s != "" {
				*n = append(*n, s)
			}
		}
	case []interface{}:
		for _, val := range v {
			s, ok := val.(string)
			if !ok {
				return errors.Errorf("unexpected name %v found", val)
			}
			*n = append(*n, s)
		}
	case nil:
		*n = nil
	default:
		return errors.Errorf("unexpected type %v found", v)
	}
	return nil
}

// Contains returns true if `name` is in the list.
func (n NameList) Contains(name string) bool {
	for _, v := range n {
		if v == name {
			return true
		}
	}
	return false
}

// LoadConfig reads the settings file at `path`.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read \"%s\"", path)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(buf, &cfg)
	case ".yml", ".yaml", "":
		err = yaml.Unmarshal(buf, &cfg)
	default:
		return nil, errors.Errorf("unsupported settings format \"%s\"", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal \"%s\"", path)
	}
	if cfg.Root == "" {
		cfg.Root = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.Root) {
		cfg.Root = JoinPathes(filepath.Dir(path), cfg.Root)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid settings \"%s\"", path)
	}
	return &cfg, nil
}

// DefaultConfig is used when no settings file exists.
// It declares a single executable named after `root`.
func DefaultConfig(root string) *Config {
	name := filepath.Base(filepath.Clean(root))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "Project"
	}
	return &Config{
		Root:      root,
		Projects:  []Project{{Name: name, Type: "execute"}},
		Solutions: []Solution{{Name: name}},
	}
}

// Validate checks project references.
func (c *Config) Validate() error {
	declared := map[string]bool{}
	for _, p := range c.Projects {
		if p.Name == "" {
			return errors.New("project without name")
		}
		if declared[p.Name] {
			return errors.Errorf("project \"%s\" declared twice", p.Name)
		}
		declared[p.Name] = true
		switch strings.ToLower(p.Type) {
		case "", "execute", "exe", "library", "lib":
		default:
			return errors.Errorf("project \"%s\": unknown type \"%s\"", p.Name, p.Type)
		}
	}
	for _, p := range c.Projects {
		for _, d := range p.Depends {
			if !declared[d] {
				return errors.Errorf("project \"%s\" depends on undeclared \"%s\"", p.Name, d)
			}
			if d == p.Name {
				return errors.Errorf("project \"%s\" depends on itself", p.Name)
			}
		}
	}
	for _, s := range c.Solutions {
		if s.Name == "" {
			return errors.New("solution without name")
		}
		for _, p := range s.Projects {
			if !declared[p] {
				return errors.Errorf("solution \"%s\" refers to undeclared project \"%s\"", s.Name, p)
			}
		}
	}
	for i, e := range c.Exclude {
		if e.isEmpty() {
			return errors.Errorf("exclude rule #%d names no value", i+1)
		}
	}
	return nil
}

// SolutionProjects retrieves the projects of `s`; every project when none is listed.
func (c *Config) SolutionProjects(s Solution) NameList {
	if len(s.Projects) != 0 {
		return s.Projects
	}
	all := make(NameList, 0, len(c.Projects))
	for _, p := range c.Projects {
		all = append(all, p.Name)
	}
	return all
}

func (s SelectionNames) isEmpty() bool {
	return len(s.Environment) == 0 && len(s.Platform) == 0 && len(s.Toolset) == 0 &&
		len(s.Optimization) == 0 && len(s.GraphicsApi) == 0
}

// Resolve converts names into masks. Missing lists take `fallback`.
func (s SelectionNames) Resolve(fallback Selection) (Selection, error) {
	result := fallback
	var err error
	if s.Environment != nil {
		if result.Environment, err = ParseEnvironment(s.Environment...); err != nil {
			return result, err
		}
	}
	if s.Platform != nil {
		if result.Platform, err = ParsePlatform(s.Platform...); err != nil {
			return result, err
		}
	}
	if s.Toolset != nil {
		if result.Toolset, err = ParseToolset(s.Toolset...); err != nil {
			return result, err
		}
	}
	if s.Optimization != nil {
		if result.Optimization, err = ParseOptimization(s.Optimization...); err != nil {
			return result, err
		}
	}
	if s.GraphicsApi != nil {
		if result.GraphicsApi, err = ParseGraphicsApi(s.GraphicsApi...); err != nil {
			return result, err
		}
	}
	return result, nil
}

// TargetSettings resolves the wanted selections against the supported ones.
func (c *Config) TargetSettings(s Settings) (TargetSettings, error) {
	ts := DefaultTargetSettings(s)
	ts.RootPath = c.Root
	var err error
	if ts.Windows, err = c.Windows.Resolve(s.Windows); err != nil {
		return ts, errors.Wrap(err, "windows")
	}
	if ts.Linux, err = c.Linux.Resolve(s.Linux); err != nil {
		return ts, errors.Wrap(err, "linux")
	}
	for i, e := range c.Exclude {
		sel, err := e.Resolve(Selection{})
		if err != nil {
			return ts, errors.Wrapf(err, "exclude rule #%d", i+1)
		}
		ts.Exclude = append(ts.Exclude, ExcludeRule{Selection: sel})
	}
	return ts, nil
}

// FindProject retrieves the project named `name`.
func (c *Config) FindProject(name string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}
