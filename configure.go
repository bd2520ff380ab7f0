package main

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Layout templates. Expanded with `Interpolate`.
const (
	projectPathTemplate      = "${root}/_Projects/${projdir}/${project}"
	intermediatePathTemplate = "${project_path}/obj/${platform}_${config}"
	libraryPathTemplate      = "${project_path}/lib/${platform}_${config}"
	targetPathTemplate       = "${root}/_bin/${env}_${toolset}_${platform}"
	targetFileNameTemplate   = "${project}_${optimization}"
	solutionPathTemplate     = "${root}/_Projects"
	solutionFileTemplate     = "${env}_${solution}"
)

// Layout places generated projects and binaries under `RootPath`.
type Layout struct {
	RootPath string
}

func (l Layout) root() string {
	if l.RootPath == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(l.RootPath))
}

// OutputType is the kind of binary a project produces.
type OutputType string

const (
	OutputExe OutputType = "exe"
	OutputLib OutputType = "lib"
)

// ProjectConfiguration is the build configuration of one project for one target.
type ProjectConfiguration struct {
	Project                 string     `json:"project"`
	Target                  string     `json:"target"`
	Name                    string     `json:"name"`
	Output                  OutputType `json:"output"`
	ProjectFileName         string     `json:"project_file_name"`
	ProjectPath             string     `json:"project_path"`
	SourceRootPath          string     `json:"source_root_path,omitempty"`
	IntermediatePath        string     `json:"intermediate_path"`
	TargetLibraryPath       string     `json:"target_library_path"`
	TargetPath              string     `json:"target_path"`
	TargetFileName          string     `json:"target_file_name"`
	TargetFileFullExtension string     `json:"target_file_full_extension,omitempty"`
	Defines                 []string   `json:"defines"`
	BuildExcludeRegex       string     `json:"build_exclude_regex"`
	Dependencies            []string   `json:"dependencies,omitempty"`
}

// ExcludesSource checks `path` is removed from the build by `BuildExcludeRegex`.
func (c *ProjectConfiguration) ExcludesSource(path string) (bool, error) {
	if c.BuildExcludeRegex == "" {
		return false, nil
	}
	rx, err := regexp.Compile(c.BuildExcludeRegex)
	if err != nil {
		return false, errors.Wrapf(err, "invalid exclusion pattern \"%s\"", c.BuildExcludeRegex)
	}
	return rx.MatchString(path), nil
}

// SolutionConfiguration is the configuration of one solution for one target.
type SolutionConfiguration struct {
	Solution         string   `json:"solution"`
	Target           string   `json:"target"`
	Name             string   `json:"name"`
	SolutionFileName string   `json:"solution_file_name"`
	SolutionPath     string   `json:"solution_path"`
	Projects         []string `json:"projects"`
}

// DefaultBuildExcludeSuffix retrieves the `name_[suffix].cpp` suffixes not built for `t`:
// every other optimization level and platform, plus `win` outside Windows.
func DefaultBuildExcludeSuffix(t Target) []string {
	var suffixes []string
	for _, o := range Optimizations {
		if o != t.Optimization {
			suffixes = append(suffixes, o.String())
		}
	}
	for _, p := range Platforms {
		if p != t.Platform {
			suffixes = append(suffixes, p.String())
		}
	}
	if !t.IsWindows() {
		suffixes = append(suffixes, "win")
	}
	return suffixes
}

func buildExcludeRegex(suffixes []string) string {
	if len(suffixes) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		quoted = append(quoted, regexp.QuoteMeta(s))
	}
	return `\.*_(` + strings.Join(quoted, "|") + `)\.cpp$`
}

func targetDefines(t Target) []string {
	platform := t.Platform.String()
	if t.IsWindows() {
		platform = "Window"
	}
	optim := t.Optimization.String()
	gfx := t.GraphicsApi.String()
	return []string{
		"BUILD_PLATFORM=" + platform,
		"BUILD_PLATFORM_" + platform,
		"BUILD_OPTIM=" + optim,
		"BUILD_OPTIM_" + optim,
		"BUILD_GFXAPI=" + gfx,
		"BUILD_GFXAPI_" + gfx,
	}
}

func (l Layout) variables(t Target) map[string]string {
	vars := t.Variables()
	vars["root"] = literal(l.root())
	return vars
}

// literal escapes `s` so that `Interpolate` yields it unchanged.
func literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

func expandAll(vars map[string]string, templates map[string]*string) error {
	for tmpl, out := range templates {
		v, err := Interpolate(tmpl, vars)
		if err != nil {
			return err
		}
		*out = v
	}
	return nil
}

// ConfigureProject computes the configuration of `project` for `target`.
func ConfigureProject(l Layout, project Project, target Target, policy Policy) (ProjectConfiguration, error) {
	vars := l.variables(target)
	vars["project"] = literal(project.Name)

	conf := ProjectConfiguration{
		Project:         project.Name,
		Target:          target.String(),
		Name:            target.ConfigName(),
		Output:          OutputExe,
		ProjectFileName: project.Name,
		Defines:         targetDefines(target),
		Dependencies:    project.Depends,
	}
	if project.IsLibrary() {
		conf.Output = OutputLib
	}
	if project.Source != "" {
		conf.SourceRootPath = JoinPathes(l.root(), project.Source)
	}

	var err error
	if conf.ProjectPath, err = Interpolate(projectPathTemplate, vars); err != nil {
		return conf, errors.Wrapf(err, "failed to configure \"%s\"", project.Name)
	}
	vars["project_path"] = literal(conf.ProjectPath)
	err = expandAll(vars, map[string]*string{
		intermediatePathTemplate: &conf.IntermediatePath,
		libraryPathTemplate:      &conf.TargetLibraryPath,
		targetPathTemplate:       &conf.TargetPath,
		targetFileNameTemplate:   &conf.TargetFileName,
	})
	if err != nil {
		return conf, errors.Wrapf(err, "failed to configure \"%s\"", project.Name)
	}

	suffix := policy.BuildExcludeSuffix
	if suffix == nil {
		suffix = DefaultBuildExcludeSuffix
	}
	conf.BuildExcludeRegex = buildExcludeRegex(suffix(target))

	// Makefile generation mis-names Windows libraries, force the archive extension.
	if target.Environment == EnvMakefile && project.IsLibrary() && target.IsWindows() {
		conf.TargetFileFullExtension = ".a"
	}
	return conf, nil
}

// ConfigureSolution computes the configuration of `solution` for `target`.
func ConfigureSolution(l Layout, solution Solution, target Target) (SolutionConfiguration, error) {
	vars := l.variables(target)
	vars["solution"] = literal(solution.Name)

	conf := SolutionConfiguration{
		Solution: solution.Name,
		Target:   target.String(),
		Name:     target.ConfigName(),
		Projects: solution.Projects,
	}
	tmpl := solutionFileTemplate
	if target.IsPlatformNameNeeded() {
		tmpl += "_${platform}"
	}
	err := expandAll(vars, map[string]*string{
		tmpl:                 &conf.SolutionFileName,
		solutionPathTemplate: &conf.SolutionPath,
	})
	if err != nil {
		return conf, errors.Wrapf(err, "failed to configure solution \"%s\"", solution.Name)
	}
	return conf, nil
}

// JoinPathes joins supplied path components and normalizes the result.
func JoinPathes(pathes ...string) string {
	return filepath.ToSlash(filepath.Clean(filepath.Join(pathes...)))
}
