/*
 * Atomic replacement of generated files.
 *
 * Output goes to a hidden sibling of the destination, renamed over
 * the destination on `Commit`.
 */
package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/myesui/uuid.v1"
)

// TransientOutput is an `io.Writer` for `Output` that only becomes visible once committed.
type TransientOutput struct {
	Output     string
	TempOutput string
	file       *os.File
	done       bool
}

// NewTransientOutput prepares a transient writer for `path`. Nothing is created until the first write.
func NewTransientOutput(path string) *TransientOutput {
	output := filepath.Clean(path)
	id := uuid.NewV4()
	return &TransientOutput{
		Output:     output,
		TempOutput: filepath.Join(filepath.Dir(output), "."+filepath.Base(output)+"-"+id.String()+".tmp"),
	}
}

func (t *TransientOutput) Write(p []byte) (int, error) {
	if t.done {
		return 0, errors.Errorf("\"%s\" is already closed", t.Output)
	}
	if t.file == nil {
		f, err := os.Create(t.TempOutput)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to create temporal output for \"%s\"", t.Output)
		}
		t.file = f
	}
	return t.file.Write(p)
}

func (t *TransientOutput) close() error {
	if t.file == nil {
		return nil
	}
	f := t.file
	t.file = nil
	return f.Close()
}

// Commit renames the temporal output to `Output`. Committing nothing creates an empty file.
func (t *TransientOutput) Commit() error {
	if t.done {
		return nil
	}
	if t.file == nil {
		if _, err := t.Write(nil); err != nil {
			return err
		}
	}
	if err := t.close(); err != nil {
		return errors.Wrapf(err, "failed to close \"%s\"", t.TempOutput)
	}
	if err := os.Rename(t.TempOutput, t.Output); err != nil {
		return errors.Wrapf(err, "failed to rename \"%s\" to \"%s\"", t.TempOutput, t.Output)
	}
	t.done = true
	return nil
}

// Abort discards the temporal output. No-op once committed.
func (t *TransientOutput) Abort() error {
	if t.done {
		return nil
	}
	t.done = true
	cerr := t.close()
	if err := os.Remove(t.TempOutput); err != nil && !os.IsNotExist(err) {
		return err
	}
	return cerr
}

// Done returns true once committed or aborted.
func (t *TransientOutput) Done() bool {
	return t.done
}
