package utils

import (
	"os"

	"github.com/pkg/errors"
)

// CheckRegularFile returns an error if the path does not exist or is a directory.
func CheckRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "cannot stat %q", path)
	}
	if info.IsDir() {
		return errors.Errorf("%q is a directory, expected a file", path)
	}
	return nil
}

// CheckDir returns an error if the path does not exist or is not a directory.
func CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "cannot stat %q", path)
	}
	if !info.IsDir() {
		return errors.Errorf("%q is not a directory", path)
	}
	return nil
}
