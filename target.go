package main

// Target is one concrete build configuration: a single value per dimension.
type Target struct {
	Environment  Environment
	Platform     Platform
	Toolset      Toolset
	Optimization Optimization
	GraphicsApi  GraphicsApi
}

// ConfigName retrieves the configuration name (ex. `Release_LLVM_Vulkan`).
// The graphics API is omitted when it is `None`.
func (t Target) ConfigName() string {
	name := t.Optimization.String() + "_" + t.Toolset.String()
	if t.GraphicsApi != GfxNone {
		name += "_" + t.GraphicsApi.String()
	}
	return name
}

// IsPlatformNameNeeded returns false when the environment handles the
// platform itself (Visual Studio with win32/win64); otherwise a distinct
// solution and project directory per platform is required.
func (t Target) IsPlatformNameNeeded() bool {
	return !(t.Environment.IsVisualStudio() && (t.Platform == PlatformWin32 || t.Platform == PlatformWin64))
}

// IsWindows returns true for win32 and win64 targets.
func (t Target) IsWindows() bool {
	return t.Platform == PlatformWin32 || t.Platform == PlatformWin64
}

// ProjectDirName is the per-environment directory under `_Projects`.
func (t Target) ProjectDirName() string {
	if t.IsPlatformNameNeeded() {
		return t.Environment.String() + "_" + t.Platform.String()
	}
	return t.Environment.String()
}

// BinDirName is the per-target directory under `_bin`.
func (t Target) BinDirName() string {
	return t.Environment.String() + "_" + t.Toolset.String() + "_" + t.Platform.String()
}

// ObjDirName is the per-configuration intermediate directory name.
func (t Target) ObjDirName() string {
	return t.Platform.String() + "_" + t.ConfigName()
}

// Variables retrieves the interpolation dictionary for this target.
func (t Target) Variables() map[string]string {
	return map[string]string{
		"env":          t.Environment.String(),
		"platform":     t.Platform.String(),
		"toolset":      t.Toolset.String(),
		"optimization": t.Optimization.String(),
		"gfxapi":       t.GraphicsApi.String(),
		"config":       t.ConfigName(),
		"projdir":      t.ProjectDirName(),
	}
}

func (t Target) String() string {
	return t.Environment.String() + "/" + t.Platform.String() + "/" + t.ConfigName()
}

// less orders targets by dimension declaration order.
func (t Target) less(o Target) bool {
	switch {
	case t.Environment != o.Environment:
		return t.Environment < o.Environment
	case t.Platform != o.Platform:
		return t.Platform < o.Platform
	case t.Toolset != o.Toolset:
		return t.Toolset < o.Toolset
	case t.Optimization != o.Optimization:
		return t.Optimization < o.Optimization
	default:
		return t.GraphicsApi < o.GraphicsApi
	}
}
