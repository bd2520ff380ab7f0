package main

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTarget_ConfigName(t *testing.T) {
	Convey("GIVEN: A VS2022/win64/LLVM/Release target", t, func() {
		target := Target{EnvVS2022, PlatformWin64, ToolsetLLVM, OptimRelease, GfxVulkan}
		Convey("WHEN: The graphics API is Vulkan", func() {
			Convey("THEN: The name is `Release_LLVM_Vulkan`", func() {
				So(target.ConfigName(), ShouldEqual, "Release_LLVM_Vulkan")
			})
		})
		Convey("WHEN: The graphics API is None", func() {
			target.GraphicsApi = GfxNone
			Convey("THEN: The API is omitted", func() {
				So(target.ConfigName(), ShouldEqual, "Release_LLVM")
			})
		})
		Convey("WHEN: The toolset is Default", func() {
			target.Toolset = ToolsetDefault
			So(target.ConfigName(), ShouldEqual, "Release_Default_Vulkan")
			target.GraphicsApi = GfxNone
			So(target.ConfigName(), ShouldEqual, "Release_Default")
		})
	})
}

func TestTarget_IsPlatformNameNeeded(t *testing.T) {
	Convey("GIVEN: Targets", t, func() {
		cases := []struct {
			target   Target
			expected bool
		}{
			{Target{EnvVS2019, PlatformWin32, ToolsetDefault, OptimDebug, GfxNone}, false},
			{Target{EnvVS2022, PlatformWin64, ToolsetDefault, OptimDebug, GfxNone}, false},
			{Target{EnvVS2022, PlatformLinux, ToolsetDefault, OptimDebug, GfxNone}, true},
			{Target{EnvMakefile, PlatformWin64, ToolsetDefault, OptimDebug, GfxNone}, true},
			{Target{EnvMakefile, PlatformLinux, ToolsetLLVM, OptimDebug, GfxNone}, true},
		}
		for _, c := range cases {
			So(c.target.IsPlatformNameNeeded(), ShouldEqual, c.expected)
		}
	})
}

func TestTarget_Paths(t *testing.T) {
	Convey("GIVEN: A Makefile/linux target", t, func() {
		target := Target{EnvMakefile, PlatformLinux, ToolsetLLVM, OptimRetail, GfxOpenGL}
		So(target.ProjectDirName(), ShouldEqual, "Makefile_linux")
		So(target.BinDirName(), ShouldEqual, "Makefile_LLVM_linux")
		So(target.ObjDirName(), ShouldEqual, "linux_Retail_LLVM_OpenGL")
		So(target.String(), ShouldEqual, "Makefile/linux/Retail_LLVM_OpenGL")
	})
	Convey("GIVEN: A VS2019/win32 target", t, func() {
		target := Target{EnvVS2019, PlatformWin32, ToolsetDefault, OptimDebug, GfxNone}
		So(target.ProjectDirName(), ShouldEqual, "VS2019")
		So(target.Variables(), ShouldResemble, map[string]string{
			"env":          "VS2019",
			"platform":     "win32",
			"toolset":      "Default",
			"optimization": "Debug",
			"gfxapi":       "None",
			"config":       "Debug_Default",
			"projdir":      "VS2019",
		})
	})
}

func TestTarget_Less(t *testing.T) {
	Convey("GIVEN: Two targets differing in the optimization only", t, func() {
		a := Target{EnvVS2022, PlatformWin64, ToolsetDefault, OptimDebug, GfxVulkan}
		b := Target{EnvVS2022, PlatformWin64, ToolsetDefault, OptimRelease, GfxNone}
		So(a.less(b), ShouldBeTrue)
		So(b.less(a), ShouldBeFalse)
		So(a.less(a), ShouldBeFalse)
	})
	Convey("GIVEN: Targets differing in the environment", t, func() {
		a := Target{EnvMakefile, PlatformWin32, ToolsetDefault, OptimDebug, GfxNone}
		b := Target{EnvVS2022, PlatformLinux, ToolsetLLVM, OptimRetail, GfxVulkan}
		So(b.less(a), ShouldBeTrue)
	})
}
