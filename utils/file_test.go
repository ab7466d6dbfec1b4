package utils

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestCheckPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.pt")
	test.That(t, os.WriteFile(file, nil, 0o600), test.ShouldBeNil)

	test.That(t, CheckRegularFile(file), test.ShouldBeNil)
	test.That(t, CheckRegularFile(dir), test.ShouldBeError, `"`+dir+`" is a directory, expected a file`)
	test.That(t, CheckRegularFile(filepath.Join(dir, "missing")), test.ShouldNotBeNil)

	test.That(t, CheckDir(dir), test.ShouldBeNil)
	test.That(t, CheckDir(file), test.ShouldBeError, `"`+file+`" is not a directory`)
	test.That(t, CheckDir(filepath.Join(dir, "missing")), test.ShouldNotBeNil)
}

func TestGetenvString(t *testing.T) {
	t.Setenv(WorkDirEnvVar, "  /scratch ")
	test.That(t, GetenvString(WorkDirEnvVar, "/tmp"), test.ShouldEqual, "/scratch")
	t.Setenv(WorkDirEnvVar, " ")
	test.That(t, GetenvString(WorkDirEnvVar, "/tmp"), test.ShouldEqual, "/tmp")
}
