// targetgen: expands the build target matrix into a configuration manifest.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

const (
	targetgenVersion = "1.1.0"

	exitOK    = 0
	exitError = 1
	exitStale = 2
)

var ProgramName = getExeName()

// Options are the command line options.
type Options struct {
	SettingsFile string
	OutputFile   string
	RootPath     string
	List         bool
	Check        bool
	Verbose      bool
	explicitFile bool
}

// The entry point.
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts Options
	fs := flag.NewFlagSet(ProgramName, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", ProgramName)
		fs.PrintDefaults()
	}
	fs.StringVarP(&opts.SettingsFile, "file", "f", "targets.yml", "target settings file (.yml or .toml)")
	fs.StringVarP(&opts.OutputFile, "output", "o", "targets.json", "output manifest")
	fs.StringVarP(&opts.RootPath, "root", "r", "", "root path of the generated layout (overrides `root`)")
	fs.BoolVarP(&opts.List, "list", "l", false, "print the expanded targets")
	fs.BoolVar(&opts.Check, "check", false, "fail if the manifest is not up to date")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose mode")
	showVersionAndExit := fs.Bool("version", false, "display version")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitError
	}
	opts.explicitFile = fs.Changed("file")

	if v, ok := os.LookupEnv("TARGETGEN_VERBOSE"); ok && ToBoolean(v) {
		opts.Verbose = true
	}
	SetupLogger(os.Stderr, opts.Verbose)

	if *showVersionAndExit {
		fmt.Fprintf(os.Stdout, "%s: %v (%s/%s)\n", ProgramName, targetgenVersion, runtime.Version(), runtime.Compiler)
		return exitOK
	}

	code, err := generate(opts, DefaultSettings(), NewFileSystemHost())
	if err != nil {
		Error(err)
	}
	return code
}

// generate expands the targets and writes (or checks) the manifest.
func generate(opts Options, settings Settings, host Host) (int, error) {
	cfg, err := loadSettings(opts)
	if err != nil {
		return exitError, err
	}
	if opts.RootPath != "" {
		cfg.Root = opts.RootPath
	}
	ts, err := cfg.TargetSettings(settings)
	if err != nil {
		return exitError, errors.Wrap(err, "failed to resolve target settings")
	}
	Verbose("windows: %v", ts.Windows)
	Verbose("linux: %v", ts.Linux)

	policy := NewPolicy(ts.Exclude)
	targets, err := CreateTargets(GenerationPaths(settings, ts, host), policy)
	if err != nil {
		return exitError, err
	}
	if len(targets) == 0 {
		Warn("No targets to generate.")
	}
	if opts.List {
		if err := RenderTargets(targets); err != nil {
			return exitError, errors.Wrap(err, "failed to render targets")
		}
	}

	m, err := BuildManifest(cfg, targets, Layout{RootPath: ts.RootPath}, policy)
	if err != nil {
		return exitError, err
	}
	if opts.Check {
		diff, err := CheckManifest(opts.OutputFile, m)
		if err != nil {
			return exitError, err
		}
		if diff != "" {
			fmt.Fprint(os.Stdout, diff)
			Warn("\"%s\" is not up to date.", opts.OutputFile)
			return exitStale, nil
		}
		Verbose("\"%s\" is up to date", opts.OutputFile)
		return exitOK, nil
	}
	if err := CreateManifestFile(opts.OutputFile, m); err != nil {
		return exitError, err
	}
	Verbose("%d target(s) written to \"%s\"", len(targets), opts.OutputFile)
	return exitOK, nil
}

func loadSettings(opts Options) (*Config, error) {
	if _, err := os.Stat(opts.SettingsFile); err != nil && os.IsNotExist(err) && !opts.explicitFile {
		root := opts.RootPath
		if root == "" {
			root = "."
		}
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		Verbose("\"%s\" not found, using defaults", opts.SettingsFile)
		return DefaultConfig(root), nil
	}
	return LoadConfig(opts.SettingsFile)
}

// Obtains executable name if possible.
func getExeName() string {
	var name = "targetgen"
	if n, err := os.Executable(); err == nil {
		name = filepath.Base(n)
	}
	return filepath.ToSlash(name)
}
