package main

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter/arbitrary"
	"github.com/leanovate/gopter/convey"
	"github.com/leanovate/gopter/gen"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeHost answers installation queries from tables.
type fakeHost struct {
	vs    map[Environment]bool
	llvm  map[Environment]bool
	linux map[Environment]bool
	clang map[Platform]bool
	calls map[Environment]int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		vs:    map[Environment]bool{},
		llvm:  map[Environment]bool{},
		linux: map[Environment]bool{},
		clang: map[Platform]bool{},
		calls: map[Environment]int{},
	}
}

// fullHost has every toolchain installed.
func fullHost() *fakeHost {
	h := newFakeHost()
	for _, env := range []Environment{EnvVS2019, EnvVS2022} {
		h.vs[env] = true
		h.llvm[env] = true
		h.linux[env] = true
	}
	h.clang[PlatformWindows] = true
	h.clang[PlatformLinux] = true
	return h
}

func (h *fakeHost) VisualStudioDir(env Environment) (string, bool) {
	h.calls[env]++
	if h.vs[env] {
		return "/vs/" + env.String(), true
	}
	return "", false
}

func (h *fakeHost) envOf(dir string) Environment {
	env, err := ParseEnvironment(strings.TrimPrefix(dir, "/vs/"))
	if err != nil {
		panic(err)
	}
	return env
}

func (h *fakeHost) HasVisualStudioLLVM(dir string) bool    { return h.llvm[h.envOf(dir)] }
func (h *fakeHost) HasVisualStudioLinux(dir string) bool   { return h.linux[h.envOf(dir)] }
func (h *fakeHost) HasStandaloneLLVM(family Platform) bool { return h.clang[family] }

func everything() Selection {
	return Selection{
		Environment:  EnvVisualStudio | EnvMakefile,
		Platform:     PlatformWin32 | PlatformWin64 | PlatformLinux,
		Toolset:      ToolsetDefault | ToolsetLLVM,
		Optimization: OptimDebug | OptimRelease | OptimRetail,
		GraphicsApi:  GfxNone | GfxDirectX11 | GfxDirectX12 | GfxOpenGL | GfxVulkan,
	}
}

type MatrixTestSuite struct {
	suite.Suite
	Settings Settings
	Targets  TargetSettings
}

func (suite *MatrixTestSuite) SetupTest() {
	suite.Settings = DefaultSettings()
	suite.Targets = DefaultTargetSettings(suite.Settings)
}

func (suite *MatrixTestSuite) create(host Host) []Target {
	targets, err := CreateTargets(GenerationPaths(suite.Settings, suite.Targets, host), NewPolicy(suite.Targets.Exclude))
	suite.Require().NoError(err)
	return targets
}

func (suite *MatrixTestSuite) TestExpandSingleTuple() {
	wanted := Selection{EnvMakefile, PlatformLinux, ToolsetDefault, OptimRelease, GfxVulkan}
	actual := Expand(everything(), wanted, nil, nil)
	assert.Equal(suite.T(), []Target{{EnvMakefile, PlatformLinux, ToolsetDefault, OptimRelease, GfxVulkan}}, actual)
}

func (suite *MatrixTestSuite) TestExpandOrder() {
	wanted := Selection{EnvVS2022 | EnvMakefile, PlatformLinux, ToolsetDefault, OptimDebug | OptimRelease, GfxNone}
	actual := Expand(everything(), wanted, nil, nil)
	assert.Equal(suite.T(), []Target{
		{EnvVS2022, PlatformLinux, ToolsetDefault, OptimDebug, GfxNone},
		{EnvVS2022, PlatformLinux, ToolsetDefault, OptimRelease, GfxNone},
		{EnvMakefile, PlatformLinux, ToolsetDefault, OptimDebug, GfxNone},
		{EnvMakefile, PlatformLinux, ToolsetDefault, OptimRelease, GfxNone},
	}, actual)
}

func (suite *MatrixTestSuite) TestExpandEmptyEffectiveSet() {
	wanted := everything()
	wanted.Optimization = 0
	assert.Empty(suite.T(), Expand(everything(), wanted, nil, nil))

	supported := everything()
	supported.GraphicsApi = GfxVulkan
	wanted = everything()
	wanted.GraphicsApi = GfxDirectX12
	assert.Empty(suite.T(), Expand(supported, wanted, nil, nil))
}

func (suite *MatrixTestSuite) TestExpandProbeOncePerEnvironment() {
	calls := map[Environment]int{}
	probe := func(env Environment, candidate Toolset) Toolset {
		calls[env]++
		if env == EnvVS2019 {
			return 0
		}
		return candidate &^ ToolsetLLVM
	}
	actual := Expand(everything(), everything(), nil, probe)
	assert.Equal(suite.T(), map[Environment]int{EnvVS2017: 1, EnvVS2019: 1, EnvVS2022: 1, EnvMakefile: 1}, calls)
	for _, tgt := range actual {
		assert.NotEqual(suite.T(), EnvVS2019, tgt.Environment)
		assert.Equal(suite.T(), ToolsetDefault, tgt.Toolset)
	}
}

func (suite *MatrixTestSuite) TestExpandCustomPredicate() {
	noRetail := func(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool {
		return optim != OptimRetail && DefaultValidity(env, platform, toolset, optim, gfx)
	}
	for _, tgt := range Expand(everything(), everything(), noRetail, nil) {
		assert.NotEqual(suite.T(), OptimRetail, tgt.Optimization)
	}
}

func (suite *MatrixTestSuite) TestDefaultValidity() {
	assert.False(suite.T(), DefaultValidity(EnvMakefile, PlatformWin64, ToolsetLLVM, OptimDebug, GfxNone))
	assert.True(suite.T(), DefaultValidity(EnvMakefile, PlatformWin64, ToolsetDefault, OptimDebug, GfxNone))
	assert.True(suite.T(), DefaultValidity(EnvMakefile, PlatformLinux, ToolsetLLVM, OptimDebug, GfxNone))
	assert.True(suite.T(), DefaultValidity(EnvVS2022, PlatformWin64, ToolsetLLVM, OptimDebug, GfxNone))
	assert.False(suite.T(), DefaultValidity(EnvVS2022, PlatformWin64, ToolsetDefault, 0, GfxNone))
}

// No LLVM anywhere, DirectX12 on Windows and Vulkan on Linux.
func (suite *MatrixTestSuite) TestNoLLVMInstalled() {
	host := fullHost()
	host.llvm = map[Environment]bool{}
	host.clang = map[Platform]bool{}
	suite.Targets.Windows.GraphicsApi = GfxDirectX12
	suite.Targets.Linux.GraphicsApi = GfxVulkan

	targets := suite.create(host)
	assert.Len(suite.T(), targets, 12+3+6+3)
	for _, tgt := range targets {
		assert.Equal(suite.T(), ToolsetDefault, tgt.Toolset, tgt.String())
		if tgt.IsWindows() {
			assert.Equal(suite.T(), GfxDirectX12, tgt.GraphicsApi)
		} else {
			assert.Equal(suite.T(), GfxVulkan, tgt.GraphicsApi)
		}
	}
}

// The Makefile + LLVM + Windows workaround holds even with clang installed.
func (suite *MatrixTestSuite) TestMakefileWindowsNeverLLVM() {
	suite.Targets.Windows.GraphicsApi = GfxNone
	suite.Targets.Linux.GraphicsApi = GfxNone
	targets := suite.create(fullHost())
	llvmLinux := 0
	for _, tgt := range targets {
		if tgt.Environment == EnvMakefile && tgt.IsWindows() {
			assert.Equal(suite.T(), ToolsetDefault, tgt.Toolset)
		}
		if tgt.Environment == EnvMakefile && tgt.Platform == PlatformLinux && tgt.Toolset == ToolsetLLVM {
			llvmLinux++
		}
		if tgt.Environment.IsVisualStudio() && tgt.Platform == PlatformLinux {
			assert.Equal(suite.T(), ToolsetDefault, tgt.Toolset)
		}
	}
	assert.Equal(suite.T(), 3, llvmLinux)
}

func (suite *MatrixTestSuite) TestNothingWanted() {
	suite.Targets.Windows.Optimization = 0
	suite.Targets.Linux.Optimization = 0
	paths := GenerationPaths(suite.Settings, suite.Targets, fullHost())
	for _, p := range paths {
		assert.Empty(suite.T(), p.Expand(DefaultValidity), p.Name)
	}
	assert.Empty(suite.T(), suite.create(fullHost()))
}

func (suite *MatrixTestSuite) TestVisualStudioNotInstalled() {
	targets := suite.create(newFakeHost())
	for _, tgt := range targets {
		assert.Equal(suite.T(), EnvMakefile, tgt.Environment)
	}
	assert.NotEmpty(suite.T(), targets)
}

func (suite *MatrixTestSuite) TestLinuxWorkloadMissing() {
	host := fullHost()
	host.linux = map[Environment]bool{}
	for _, tgt := range suite.create(host) {
		if tgt.Platform == PlatformLinux {
			assert.Equal(suite.T(), EnvMakefile, tgt.Environment)
		}
	}
}

func (suite *MatrixTestSuite) TestUnionIsSorted() {
	targets := suite.create(fullHost())
	suite.Require().NotEmpty(targets)
	assert.Equal(suite.T(), Target{EnvVS2019, PlatformWin32, ToolsetDefault, OptimDebug, GfxNone}, targets[0])
	for i := 1; i < len(targets); i++ {
		assert.False(suite.T(), targets[i].less(targets[i-1]), "%v before %v", targets[i-1], targets[i])
		assert.NotEqual(suite.T(), targets[i-1], targets[i])
	}
}

func (suite *MatrixTestSuite) TestInstallationLookedUpOncePerPath() {
	host := fullHost()
	suite.create(host)
	assert.Equal(suite.T(), map[Environment]int{EnvVS2019: 1, EnvVS2022: 2}, host.calls)
}

func (suite *MatrixTestSuite) TestDeterministic() {
	first := suite.create(fullHost())
	second := suite.create(fullHost())
	assert.Equal(suite.T(), first, second)
}

func (suite *MatrixTestSuite) TestExcludeRules() {
	suite.Targets.Exclude = ExcludeRules{
		{Selection{Environment: EnvVS2019, Optimization: OptimRetail}},
		{Selection{GraphicsApi: GfxOpenGL}},
	}
	targets := suite.create(fullHost())
	assert.NotEmpty(suite.T(), targets)
	for _, tgt := range targets {
		assert.False(suite.T(), tgt.Environment == EnvVS2019 && tgt.Optimization == OptimRetail)
		assert.NotEqual(suite.T(), GfxOpenGL, tgt.GraphicsApi)
	}
}

func (suite *MatrixTestSuite) TestOverlappingPaths() {
	paths := []GenerationPath{
		{Name: "a", Supported: everything(), Wanted: everything(), Probe: AcceptAll},
		{Name: "b", Supported: everything(), Wanted: everything(), Probe: AcceptAll},
	}
	_, err := CreateTargets(paths, NewPolicy(nil))
	if assert.Error(suite.T(), err) {
		assert.True(suite.T(), errors.Is(err, ErrOverlappingPaths))
	}
}

func TestMatrixSuite(t *testing.T) {
	suite.Run(t, new(MatrixTestSuite))
}

func registerSelectionGens(arbitraries *arbitrary.Arbitraries) {
	arbitraries.RegisterGen(gen.UInt32Range(0, 0xF).Map(func(v uint32) Environment { return Environment(v) }))
	arbitraries.RegisterGen(gen.UInt32Range(0, 0x7).Map(func(v uint32) Platform { return Platform(v) }))
	arbitraries.RegisterGen(gen.UInt32Range(0, 0x3).Map(func(v uint32) Toolset { return Toolset(v) }))
	arbitraries.RegisterGen(gen.UInt32Range(0, 0x7).Map(func(v uint32) Optimization { return Optimization(v) }))
	arbitraries.RegisterGen(gen.UInt32Range(0, 0x1F).Map(func(v uint32) GraphicsApi { return GraphicsApi(v) }))
}

func TestCreateTargets_Properties(t *testing.T) {
	arbitraries := arbitrary.DefaultArbitraries()
	registerSelectionGens(arbitraries)

	settings := DefaultSettings()
	create := func(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) ([]Target, error) {
		ts := DefaultTargetSettings(settings)
		ts.Windows = Selection{env, platform, toolset, optim, gfx}
		ts.Linux = Selection{env, platform, toolset, optim, gfx}
		return CreateTargets(GenerationPaths(settings, ts, fullHost()), NewPolicy(nil))
	}

	Convey(`Generation paths never overlap with the default settings`, t, func() {
		condition := func(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool {
			_, err := create(env, platform, toolset, optim, gfx)
			return err == nil
		}
		So(condition, convey.ShouldSucceedForAll, arbitraries)
	})
	Convey(`Expansion is idempotent`, t, func() {
		condition := func(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool {
			a, errA := create(env, platform, toolset, optim, gfx)
			b, errB := create(env, platform, toolset, optim, gfx)
			if errA != nil || errB != nil || len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		}
		So(condition, convey.ShouldSucceedForAll, arbitraries)
	})
	Convey(`An empty wanted dimension yields no targets`, t, func() {
		condition := func(env Environment, platform Platform, toolset Toolset, optim Optimization) bool {
			targets, err := create(env, platform, toolset, optim, 0)
			return err == nil && len(targets) == 0
		}
		So(condition, convey.ShouldSucceedForAll, arbitraries)
	})
	Convey(`Every target holds single wanted values`, t, func() {
		condition := func(env Environment, platform Platform, toolset Toolset, optim Optimization, gfx GraphicsApi) bool {
			targets, err := create(env, platform, toolset, optim, gfx)
			if err != nil {
				return false
			}
			for _, tgt := range targets {
				if tgt.Environment.Count() != 1 || !env.Contains(tgt.Environment) ||
					tgt.Platform.Count() != 1 || !platform.Contains(tgt.Platform) ||
					tgt.Toolset.Count() != 1 || !toolset.Contains(tgt.Toolset) ||
					tgt.Optimization.Count() != 1 || !optim.Contains(tgt.Optimization) ||
					tgt.GraphicsApi.Count() != 1 || !gfx.Contains(tgt.GraphicsApi) {
					return false
				}
			}
			return true
		}
		So(condition, convey.ShouldSucceedForAll, arbitraries)
	})
}
