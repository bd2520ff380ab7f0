package main

import (
	"strconv"

	"github.com/pterm/pterm"
)

// TargetTable builds the listing table, header first.
func TargetTable(targets []Target) pterm.TableData {
	data := pterm.TableData{
		{"Env", "Platform", "Toolset", "Optimization", "GraphicsApi", "Config", "PlatformInPath"},
	}
	for _, t := range targets {
		data = append(data, []string{
			t.Environment.String(),
			t.Platform.String(),
			t.Toolset.String(),
			t.Optimization.String(),
			t.GraphicsApi.String(),
			t.ConfigName(),
			strconv.FormatBool(t.IsPlatformNameNeeded()),
		})
	}
	return data
}

// RenderTargets prints the targets as a table to stdout.
func RenderTargets(targets []Target) error {
	return pterm.DefaultTable.WithHasHeader().WithData(TargetTable(targets)).Render()
}
