// Target matrix expansion.

package main

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrOverlappingPaths is reported when two generation paths yield the same
// (environment, platform) pair.
var ErrOverlappingPaths = errors.New("generation paths overlap")

// ValidityPredicate receives one value per dimension and returns true for a
// valid combination.
type ValidityPredicate func(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool

// CapabilityProbe trims `candidate` down to the toolsets the host can build
// for `env`. Returning 0 drops the environment.
type CapabilityProbe func(env Environment, candidate Toolset) Toolset

// DefaultValidity accepts any complete tuple, except Makefile + LLVM on
// Windows platforms (library path conflict in the clang toolchain).
func DefaultValidity(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool {
	if env.IsMakefile() && platform.IsWindows() {
		toolset &^= ToolsetLLVM
	}
	return env != 0 && platform != 0 && toolset != 0 && optim != 0 && gfx != 0
}

// AcceptAll is the probe for environments that need no installation.
func AcceptAll(_ Environment, candidate Toolset) Toolset {
	return candidate
}

// Expand enumerates every valid tuple of `wanted` ∩ `supported`.
// Tuples are produced in dimension declaration order.
func Expand(supported, wanted Selection, valid ValidityPredicate, probe CapabilityProbe) []Target {
	effective := wanted.Intersect(supported)
	if effective.IsEmpty() {
		return nil
	}
	if valid == nil {
		valid = DefaultValidity
	}
	if probe == nil {
		probe = AcceptAll
	}
	var result []Target
	for _, env := range valuesIn(Environments, effective.Environment) {
		toolsets := probe(env, effective.Toolset) & effective.Toolset
		if toolsets == 0 {
			Verbose("%s: no usable toolset, skipped", env)
			continue
		}
		for _, platform := range valuesIn(Platforms, effective.Platform) {
			for _, toolset := range valuesIn(Toolsets, toolsets) {
				for _, optim := range valuesIn(Optimizations, effective.Optimization) {
					for _, gfx := range valuesIn(GraphicsApis, effective.GraphicsApi) {
						if valid(env, platform, toolset, optim, gfx) {
							result = append(result, Target{
								Environment:  env,
								Platform:     platform,
								Toolset:      toolset,
								Optimization: optim,
								GraphicsApi:  gfx,
							})
						}
					}
				}
			}
		}
	}
	return result
}

// GenerationPath is one host environment family expanded independently.
type GenerationPath struct {
	Name      string
	Supported Selection
	Wanted    Selection
	Probe     CapabilityProbe
}

// Expand runs the matrix expansion for this path.
func (p GenerationPath) Expand(valid ValidityPredicate) []Target {
	return Expand(p.Supported, p.Wanted, valid, p.Probe)
}

func restrictEnvironment(s Selection, env Environment) Selection {
	s.Environment &= env
	return s
}

// GenerationPaths builds the four generation paths:
// Visual Studio on Windows, Visual Studio Linux cross-compile,
// Makefile on Windows and Makefile on Linux.
func GenerationPaths(s Settings, ts TargetSettings, host Host) []GenerationPath {
	return []GenerationPath{
		{
			Name:      "vs-windows",
			Supported: restrictEnvironment(s.Windows, EnvVisualStudio),
			Wanted:    ts.Windows,
			Probe:     visualStudioWindowsProbe(host),
		},
		{
			Name:      "vs-linux",
			Supported: restrictEnvironment(s.Linux, EnvVisualStudio),
			Wanted:    ts.Linux,
			Probe:     visualStudioLinuxProbe(host),
		},
		{
			Name:      "make-windows",
			Supported: restrictEnvironment(s.Windows, EnvMakefile),
			Wanted:    ts.Windows,
			Probe:     makefileProbe(host, PlatformWindows),
		},
		{
			Name:      "make-linux",
			Supported: restrictEnvironment(s.Linux, EnvMakefile),
			Wanted:    ts.Linux,
			Probe:     makefileProbe(host, PlatformLinux),
		},
	}
}

func visualStudioWindowsProbe(host Host) CapabilityProbe {
	return func(env Environment, candidate Toolset) Toolset {
		dir, ok := host.VisualStudioDir(env)
		if !ok {
			Verbose("%s: installation not found", env)
			return 0
		}
		if candidate&ToolsetLLVM != 0 && !host.HasVisualStudioLLVM(dir) {
			Verbose("%s: embedded LLVM not found, LLVM toolset disabled", env)
			candidate &^= ToolsetLLVM
		}
		return candidate
	}
}

func visualStudioLinuxProbe(host Host) CapabilityProbe {
	return func(env Environment, candidate Toolset) Toolset {
		dir, ok := host.VisualStudioDir(env)
		if !ok {
			return 0
		}
		if !host.HasVisualStudioLinux(dir) {
			Verbose("%s: Linux workload not found", env)
			return 0
		}
		// TODO: enable LLVM once the Linux workload ships a clang toolset we can select.
		return candidate &^ ToolsetLLVM
	}
}

// makefileProbe needs no installation, only a standalone clang for LLVM.
func makefileProbe(host Host, family Platform) CapabilityProbe {
	return func(env Environment, candidate Toolset) Toolset {
		if candidate&ToolsetLLVM != 0 && !host.HasStandaloneLLVM(family) {
			Verbose("%s (%s): clang not found, LLVM toolset disabled", env, family)
			candidate &^= ToolsetLLVM
		}
		return candidate
	}
}

// Policy carries the caller supplied hooks used while creating targets
// and configuring projects.
type Policy struct {
	Valid              ValidityPredicate
	BuildExcludeSuffix func(Target) []string
}

// NewPolicy returns the default policy extended with `rules`.
func NewPolicy(rules ExcludeRules) Policy {
	return Policy{
		Valid:              rules.Predicate(DefaultValidity),
		BuildExcludeSuffix: DefaultBuildExcludeSuffix,
	}
}

type pathKey struct {
	env      Environment
	platform Platform
}

// CreateTargets expands every path and returns the union ordered by
// dimension declaration order.
func CreateTargets(paths []GenerationPath, policy Policy) ([]Target, error) {
	var result []Target
	owner := map[pathKey]string{}
	for _, p := range paths {
		targets := p.Expand(policy.Valid)
		Verbose("%s: %d target(s)", p.Name, len(targets))
		seen := map[pathKey]bool{}
		for _, t := range targets {
			k := pathKey{t.Environment, t.Platform}
			if seen[k] {
				continue
			}
			seen[k] = true
			if other, ok := owner[k]; ok {
				return nil, errors.Wrapf(ErrOverlappingPaths, "%s/%s produced by \"%s\" and \"%s\"", t.Environment, t.Platform, other, p.Name)
			}
			owner[k] = p.Name
		}
		result = append(result, targets...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].less(result[j])
	})
	return result, nil
}
