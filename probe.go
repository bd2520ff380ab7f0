package main

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Host answers installation queries for capability probes.
type Host interface {
	// VisualStudioDir retrieves the installation directory of `env`.
	VisualStudioDir(env Environment) (string, bool)
	// HasVisualStudioLLVM checks the clang toolchain embedded in the installation at `dir`.
	HasVisualStudioLLVM(dir string) bool
	// HasVisualStudioLinux checks the Linux cross-compile workload of the installation at `dir`.
	HasVisualStudioLinux(dir string) bool
	// HasStandaloneLLVM checks a clang usable from Makefiles targeting `family`.
	HasStandaloneLLVM(family Platform) bool
}

// FileSystemHost probes the local file system.
// Any failure to stat a path (including permission errors) counts as not found.
type FileSystemHost struct {
	LookupEnv func(string) (string, bool)
	Stat      func(string) (os.FileInfo, error)
	LookPath  func(string) (string, error)
}

// NewFileSystemHost returns a host backed by the process environment and `os.Stat`.
func NewFileSystemHost() *FileSystemHost {
	return &FileSystemHost{
		LookupEnv: os.LookupEnv,
		Stat:      os.Stat,
		LookPath:  exec.LookPath,
	}
}

var visualStudioEditions = []string{"Enterprise", "Professional", "Community", "BuildTools"}

type visualStudioRelease struct {
	year        string
	envVar      string
	programDir  string
	defaultRoot string
}

func releaseOf(env Environment) (visualStudioRelease, bool) {
	switch env {
	case EnvVS2017:
		return visualStudioRelease{"2017", "VS2017INSTALLDIR", "ProgramFiles(x86)", "C:/Program Files (x86)"}, true
	case EnvVS2019:
		return visualStudioRelease{"2019", "VS2019INSTALLDIR", "ProgramFiles(x86)", "C:/Program Files (x86)"}, true
	case EnvVS2022:
		return visualStudioRelease{"2022", "VS2022INSTALLDIR", "ProgramFiles", "C:/Program Files"}, true
	}
	return visualStudioRelease{}, false
}

func (h *FileSystemHost) isDir(path string) bool {
	fi, err := h.Stat(path)
	return err == nil && fi.IsDir()
}

func (h *FileSystemHost) isFile(path string) bool {
	fi, err := h.Stat(path)
	return err == nil && !fi.IsDir()
}

func (h *FileSystemHost) env(key string) (string, bool) {
	if h.LookupEnv == nil {
		return "", false
	}
	v, ok := h.LookupEnv(key)
	return v, ok && v != ""
}

// VisualStudioDir probes `<Env>INSTALLDIR` first, then the default install locations.
func (h *FileSystemHost) VisualStudioDir(env Environment) (string, bool) {
	rel, ok := releaseOf(env)
	if !ok {
		return "", false
	}
	if dir, ok := h.env(rel.envVar); ok {
		if h.isDir(dir) {
			return filepath.ToSlash(filepath.Clean(dir)), true
		}
		Verbose("%s=\"%s\" is not a directory", rel.envVar, dir)
	}
	root := rel.defaultRoot
	if v, ok := h.env(rel.programDir); ok {
		root = v
	}
	for _, edition := range visualStudioEditions {
		dir := filepath.Join(root, "Microsoft Visual Studio", rel.year, edition)
		if h.isDir(dir) {
			return filepath.ToSlash(filepath.Clean(dir)), true
		}
	}
	return "", false
}

// HasVisualStudioLLVM probes `VC/Tools/Llvm/[x64/]bin/clang.exe`.
func (h *FileSystemHost) HasVisualStudioLLVM(dir string) bool {
	llvm := filepath.Join(dir, "VC", "Tools", "Llvm")
	return h.isFile(filepath.Join(llvm, "bin", "clang.exe")) ||
		h.isFile(filepath.Join(llvm, "x64", "bin", "clang.exe"))
}

// HasVisualStudioLinux probes `Common7/IDE/VC/Linux`.
func (h *FileSystemHost) HasVisualStudioLinux(dir string) bool {
	return h.isDir(filepath.Join(dir, "Common7", "IDE", "VC", "Linux"))
}

// HasStandaloneLLVM probes `LLVM_PATH`, the default Windows install and `PATH`.
func (h *FileSystemHost) HasStandaloneLLVM(family Platform) bool {
	exe := "clang"
	if family.IsWindows() {
		exe = "clang.exe"
	}
	if dir, ok := h.env("LLVM_PATH"); ok && h.isFile(filepath.Join(dir, "bin", exe)) {
		return true
	}
	if family.IsWindows() && h.isFile(filepath.Join("C:/Program Files/LLVM", "bin", exe)) {
		return true
	}
	if h.LookPath != nil {
		if _, err := h.LookPath(exe); err == nil {
			return true
		}
	}
	return false
}
