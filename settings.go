package main

import (
	"fmt"
)

// Selection holds one mask per target dimension.
type Selection struct {
	Environment  Environment
	Platform     Platform
	Toolset      Toolset
	Optimization Optimization
	GraphicsApi  GraphicsApi
}

// Intersect intersects every dimension of `s` with `o`.
func (s Selection) Intersect(o Selection) Selection {
	return Selection{
		Environment:  s.Environment & o.Environment,
		Platform:     s.Platform & o.Platform,
		Toolset:      s.Toolset & o.Toolset,
		Optimization: s.Optimization & o.Optimization,
		GraphicsApi:  s.GraphicsApi & o.GraphicsApi,
	}
}

// IsEmpty returns true if any of the dimensions selects nothing.
func (s Selection) IsEmpty() bool {
	return s.Environment == 0 || s.Platform == 0 || s.Toolset == 0 || s.Optimization == 0 || s.GraphicsApi == 0
}

func (s Selection) String() string {
	return fmt.Sprintf("env=%v platform=%v toolset=%v optim=%v gfx=%v",
		s.Environment, s.Platform, s.Toolset, s.Optimization, s.GraphicsApi)
}

// Settings is the set of target values this generator supports, per host family.
// It is built once and passed by value.
type Settings struct {
	Windows Selection
	Linux   Selection
}

// DefaultSettings returns the supported target policy.
func DefaultSettings() Settings {
	return Settings{
		Windows: Selection{
			Environment:  EnvVS2019 | EnvVS2022 | EnvMakefile,
			Platform:     PlatformWin32 | PlatformWin64,
			Toolset:      ToolsetDefault | ToolsetLLVM,
			Optimization: OptimDebug | OptimRelease | OptimRetail,
			GraphicsApi:  GfxNone | GfxDirectX11 | GfxDirectX12 | GfxOpenGL | GfxVulkan,
		},
		Linux: Selection{
			// VS2019 has compile path issues with the Linux workload
			Environment:  EnvVS2022 | EnvMakefile,
			Platform:     PlatformLinux,
			Toolset:      ToolsetDefault | ToolsetLLVM,
			Optimization: OptimDebug | OptimRelease | OptimRetail,
			GraphicsApi:  GfxNone | GfxOpenGL | GfxVulkan,
		},
	}
}

// TargetSettings holds the requested targets and the output layout root.
type TargetSettings struct {
	Windows  Selection
	Linux    Selection
	RootPath string
	Exclude  ExcludeRules
}

// DefaultTargetSettings requests everything `s` supports.
func DefaultTargetSettings(s Settings) TargetSettings {
	return TargetSettings{
		Windows:  s.Windows,
		Linux:    s.Linux,
		RootPath: ".",
	}
}

// ExcludeRule rejects every tuple whose values are all contained in the rule.
// A zero dimension matches anything.
type ExcludeRule struct {
	Selection
}

// Matches checks the rule covers the given tuple.
func (r ExcludeRule) Matches(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool {
	return (r.Environment == 0 || r.Environment&env != 0) &&
		(r.Platform == 0 || r.Platform&platform != 0) &&
		(r.Toolset == 0 || r.Toolset&toolset != 0) &&
		(r.Optimization == 0 || r.Optimization&optim != 0) &&
		(r.GraphicsApi == 0 || r.GraphicsApi&gfx != 0)
}

// ExcludeRules is a list of user supplied exclusions.
type ExcludeRules []ExcludeRule

// Predicate wraps `base` so that excluded tuples are rejected.
func (rs ExcludeRules) Predicate(base ValidityPredicate) ValidityPredicate {
	if base == nil {
		base = DefaultValidity
	}
	if len(rs) == 0 {
		return base
	}
	return func(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool {
		for _, r := range rs {
			if r.Matches(env, platform, toolset, optim, gfx) {
				return false
			}
		}
		return base(env, platform, toolset, optim, gfx)
	}
}
