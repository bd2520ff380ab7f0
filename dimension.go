package main

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Flag is the common shape of every target dimension.
type Flag interface {
	~uint32
	String() string
}

// EnumerateIndividualValues returns the single-bit members of `declared`
// in declaration order. Composite and invalid members are skipped
// wherever they appear.
func EnumerateIndividualValues[T ~uint32](declared []T) []T {
	result := make([]T, 0, len(declared))
	for _, v := range declared {
		if v != 0 && v&(v-1) == 0 {
			result = append(result, v)
		}
	}
	return result
}

// valuesIn retrieves the members of `individuals` set in `mask`, preserving order.
func valuesIn[T ~uint32](individuals []T, mask T) []T {
	var result []T
	for _, v := range individuals {
		if v&mask != 0 {
			result = append(result, v)
		}
	}
	return result
}

// joinNames renders a mask as `|`-joined member names.
func joinNames[T Flag](individuals []T, mask T, name func(T) string) string {
	if mask == 0 {
		return "0"
	}
	var names []string
	rest := mask
	for _, v := range individuals {
		if v&mask != 0 {
			names = append(names, name(v))
			rest &^= v
		}
	}
	if rest != 0 {
		names = append(names, "?")
	}
	return strings.Join(names, "|")
}

// parseNames ORs the members of `declared` whose names match `names`.
func parseNames[T Flag](dimension string, declared []T, names []string, aliases map[string]T) (T, error) {
	var result T
	for _, n := range names {
		key := strings.TrimSpace(n)
		if key == "" {
			continue
		}
		found := false
		for _, v := range declared {
			if strings.EqualFold(v.String(), key) {
				result |= v
				found = true
				break
			}
		}
		if !found {
			if v, ok := aliases[strings.ToLower(key)]; ok {
				result |= v
				found = true
			}
		}
		if !found {
			return 0, errors.Errorf("unknown %s \"%s\"", dimension, key)
		}
	}
	return result, nil
}

/*
 * Environment
 */

// Environment is the development environment a configuration is generated for.
type Environment uint32

const (
	EnvVS2017 Environment = 1 << iota
	EnvVS2019
	EnvVS2022
	EnvMakefile

	// EnvVisualStudio is a convenience union, not an individual value.
	EnvVisualStudio = EnvVS2017 | EnvVS2019 | EnvVS2022
)

// GetEnvironments returns the declared enumeration, unions included.
func GetEnvironments() []Environment {
	return []Environment{EnvVS2017, EnvVS2019, EnvVS2022, EnvMakefile, EnvVisualStudio}
}

// Environments lists the individual environments.
var Environments = EnumerateIndividualValues(GetEnvironments())

func (x Environment) name() string {
	switch x {
	case EnvVS2017:
		return "VS2017"
	case EnvVS2019:
		return "VS2019"
	case EnvVS2022:
		return "VS2022"
	case EnvMakefile:
		return "Makefile"
	case EnvVisualStudio:
		return "VisualStudio"
	}
	return ""
}

func (x Environment) String() string {
	if n := x.name(); n != "" {
		return n
	}
	return joinNames(Environments, x, Environment.name)
}

// IsVisualStudio returns true if `x` contains a Visual Studio environment.
func (x Environment) IsVisualStudio() bool { return x&EnvVisualStudio != 0 }

// IsMakefile returns true if `x` contains the Makefile environment.
func (x Environment) IsMakefile() bool { return x&EnvMakefile != 0 }

// Values retrieves the individual members of the selection.
func (x Environment) Values() []Environment { return valuesIn(Environments, x) }

// Contains checks `v` is selected.
func (x Environment) Contains(v Environment) bool { return v != 0 && x&v == v }

// Count returns the number of selected members.
func (x Environment) Count() int { return bits.OnesCount32(uint32(x)) }

// ParseEnvironment converts names into a selection.
func ParseEnvironment(names ...string) (Environment, error) {
	return parseNames("environment", GetEnvironments(), names, map[string]Environment{
		"make": EnvMakefile,
		"vs":   EnvVisualStudio,
	})
}

/*
 * Platform
 */

// Platform is the target platform.
type Platform uint32

const (
	PlatformWin32 Platform = 1 << iota
	PlatformWin64
	PlatformLinux

	// PlatformWindows is a convenience union.
	PlatformWindows = PlatformWin32 | PlatformWin64
	// PlatformAny is the invalid all-bits value.
	PlatformAny Platform = ^Platform(0)
)

// GetPlatforms returns the declared enumeration, including the union and invalid members.
func GetPlatforms() []Platform {
	return []Platform{PlatformWin32, PlatformWin64, PlatformLinux, PlatformWindows, PlatformAny}
}

// Platforms lists the individual platforms.
var Platforms = EnumerateIndividualValues(GetPlatforms())

func (x Platform) name() string {
	switch x {
	case PlatformWin32:
		return "win32"
	case PlatformWin64:
		return "win64"
	case PlatformLinux:
		return "linux"
	case PlatformWindows:
		return "windows"
	case PlatformAny:
		return "any"
	}
	return ""
}

func (x Platform) String() string {
	if n := x.name(); n != "" {
		return n
	}
	return joinNames(Platforms, x, Platform.name)
}

// IsWindows returns true if `x` contains a Windows platform.
func (x Platform) IsWindows() bool { return x&PlatformWindows != 0 }

// Values retrieves the individual platforms of the selection.
func (x Platform) Values() []Platform { return valuesIn(Platforms, x) }

// Contains checks `v` is selected.
func (x Platform) Contains(v Platform) bool { return v != 0 && x&v == v }

// Count returns the number of selected platforms.
func (x Platform) Count() int { return bits.OnesCount32(uint32(x)) }

// ParsePlatform converts names into a selection. `any` is rejected.
func ParsePlatform(names ...string) (Platform, error) {
	declared := []Platform{PlatformWin32, PlatformWin64, PlatformLinux, PlatformWindows}
	return parseNames("platform", declared, names, map[string]Platform{
		"x86": PlatformWin32,
		"x64": PlatformWin64,
	})
}

/*
 * Toolset
 */

// Toolset selects the compiler toolchain used to build a configuration.
type Toolset uint32

const (
	ToolsetDefault Toolset = 1 << iota
	ToolsetLLVM
)

// GetToolsets returns the declared enumeration.
func GetToolsets() []Toolset { return []Toolset{ToolsetDefault, ToolsetLLVM} }

// Toolsets lists the individual toolsets.
var Toolsets = EnumerateIndividualValues(GetToolsets())

func (x Toolset) name() string {
	switch x {
	case ToolsetDefault:
		return "Default"
	case ToolsetLLVM:
		return "LLVM"
	}
	return ""
}

func (x Toolset) String() string {
	if n := x.name(); n != "" {
		return n
	}
	return joinNames(Toolsets, x, Toolset.name)
}

// Values retrieves the individual toolsets of the selection.
func (x Toolset) Values() []Toolset { return valuesIn(Toolsets, x) }

// Contains checks `v` is selected.
func (x Toolset) Contains(v Toolset) bool { return v != 0 && x&v == v }

// Count returns the number of selected toolsets.
func (x Toolset) Count() int { return bits.OnesCount32(uint32(x)) }

// ParseToolset converts names into a selection.
func ParseToolset(names ...string) (Toolset, error) {
	return parseNames("toolset", GetToolsets(), names, map[string]Toolset{
		"clang": ToolsetLLVM,
	})
}

/*
 * Optimization
 */

// Optimization is the optimization level of a configuration.
type Optimization uint32

const (
	OptimDebug Optimization = 1 << iota
	OptimRelease
	OptimRetail
)

// GetOptimizations returns the declared enumeration.
func GetOptimizations() []Optimization {
	return []Optimization{OptimDebug, OptimRelease, OptimRetail}
}

// Optimizations lists the individual optimization levels.
var Optimizations = EnumerateIndividualValues(GetOptimizations())

func (x Optimization) name() string {
	switch x {
	case OptimDebug:
		return "Debug"
	case OptimRelease:
		return "Release"
	case OptimRetail:
		return "Retail"
	}
	return ""
}

func (x Optimization) String() string {
	if n := x.name(); n != "" {
		return n
	}
	return joinNames(Optimizations, x, Optimization.name)
}

// Values retrieves the individual optimization levels of the selection.
func (x Optimization) Values() []Optimization { return valuesIn(Optimizations, x) }

// Contains checks `v` is selected.
func (x Optimization) Contains(v Optimization) bool { return v != 0 && x&v == v }

// Count returns the number of selected optimization levels.
func (x Optimization) Count() int { return bits.OnesCount32(uint32(x)) }

// ParseOptimization converts names into a selection.
func ParseOptimization(names ...string) (Optimization, error) {
	return parseNames("optimization", GetOptimizations(), names, nil)
}

/*
 * GraphicsApi
 */

// GraphicsApi is the rendering backend compiled into a configuration.
type GraphicsApi uint32

const (
	GfxNone GraphicsApi = 1 << iota
	GfxDirectX11
	GfxDirectX12
	GfxOpenGL
	GfxVulkan
)

// GetGraphicsApis returns the declared enumeration.
func GetGraphicsApis() []GraphicsApi {
	return []GraphicsApi{GfxNone, GfxDirectX11, GfxDirectX12, GfxOpenGL, GfxVulkan}
}

// GraphicsApis lists the individual graphics APIs.
var GraphicsApis = EnumerateIndividualValues(GetGraphicsApis())

func (x GraphicsApi) name() string {
	switch x {
	case GfxNone:
		return "None"
	case GfxDirectX11:
		return "DirectX11"
	case GfxDirectX12:
		return "DirectX12"
	case GfxOpenGL:
		return "OpenGL"
	case GfxVulkan:
		return "Vulkan"
	}
	return ""
}

func (x GraphicsApi) String() string {
	if n := x.name(); n != "" {
		return n
	}
	return joinNames(GraphicsApis, x, GraphicsApi.name)
}

// Values retrieves the individual graphics APIs of the selection.
func (x GraphicsApi) Values() []GraphicsApi { return valuesIn(GraphicsApis, x) }

// Contains checks `v` is selected.
func (x GraphicsApi) Contains(v GraphicsApi) bool { return v != 0 && x&v == v }

// Count returns the number of selected graphics APIs.
func (x GraphicsApi) Count() int { return bits.OnesCount32(uint32(x)) }

// ParseGraphicsApi converts names into a selection.
func ParseGraphicsApi(names ...string) (GraphicsApi, error) {
	return parseNames("graphics api", GetGraphicsApis(), names, map[string]GraphicsApi{
		"opengl4_6": GfxOpenGL,
		"dx11":      GfxDirectX11,
		"dx12":      GfxDirectX12,
	})
}
