package main

import (
	"fmt"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/pkg/errors"
)

// CheckManifest compares the manifest stored at `path` with `m`.
// Returns a unified diff, empty when up to date. A missing file compares as empty.
func CheckManifest(path string, m *Manifest) (string, error) {
	fresh, err := MarshalManifest(m)
	if err != nil {
		return "", err
	}
	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "failed to read \"%s\"", path)
	}
	return unifiedDiff(path, string(current), string(fresh)), nil
}

func unifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(path, path+" (generated)", before, edits))
}
