package main

import (
	"bytes"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestToBooleanTrue(t *testing.T) {
	Convey("Test `ToBoolean` return true case", t, func() {
		trueCases := []string{
			"true", "True", "TRUE", "T",
			"yes", "Yes", "YES", "Y",
			"on", "On", "ON",
			"1"}
		for _, v := range trueCases {
			Convey(fmt.Sprintf("\"%s\" should be `true`", v), func() {
				So(ToBoolean(v), ShouldBeTrue)
			})
			addJunk := v + " ABCDEFG"
			Convey(fmt.Sprintf("\"%s\" should be `true`", addJunk), func() {
				So(ToBoolean(addJunk), ShouldBeTrue)
			})
		}
	})
}

func TestToBooleanFalse(t *testing.T) {
	Convey("Test `ToBoolean` returns `false` case", t, func() {
		falseCases := []string{
			"false", "False", "FALSE", "F",
			"no", "No", "NO", "N",
			"off", "Off", "OFF",
			"0"}
		for _, v := range falseCases {
			Convey(fmt.Sprintf("\"%s\" should be `false`", v), func() {
				So(ToBoolean(v), ShouldBeFalse)
			})
			addJunk := v + " ABCDEFG"
			Convey(fmt.Sprintf("\"%s\" should be `false`", addJunk), func() {
				So(ToBoolean(addJunk), ShouldBeFalse)
			})
		}
	})
}

func TestToBooleanUndefined(t *testing.T) {
	Convey("Test `ToBoolean` return `false` to unidentified string", t, func() {
		var buf bytes.Buffer
		SetupLogger(&buf, false)
		Reset(func() { SetupLogger(&bytes.Buffer{}, false) })
		for _, v := range []string{"mokeke", "truthy", "offset", "2"} {
			Convey(fmt.Sprintf("\"%s\" should be `false` with a warning", v), func() {
				So(ToBoolean(v), ShouldBeFalse)
				So(buf.String(), ShouldContainSubstring, "Ambiguous boolean")
			})
		}
	})
}

func TestLogger(t *testing.T) {
	Convey("GIVEN: A logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		Reset(func() { SetupLogger(&bytes.Buffer{}, false) })
		Convey("WHEN: Not verbose", func() {
			SetupLogger(&buf, false)
			Verbose("expanding %s", "VS2022")
			Warn("No targets to generate.")
			Convey("THEN: Only the warning is written", func() {
				So(buf.String(), ShouldNotContainSubstring, "expanding VS2022")
				So(buf.String(), ShouldContainSubstring, "No targets to generate.")
			})
		})
		Convey("WHEN: Verbose", func() {
			SetupLogger(&buf, true)
			Verbose("expanding %s", "VS2022")
			Convey("THEN: Debug messages are written", func() {
				So(buf.String(), ShouldContainSubstring, "expanding VS2022")
			})
		})
	})
}
