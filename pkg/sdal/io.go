package sdal

import (
	"os"
	"path/filepath"

	"github.com/KickingAnimal/SDAL-Builder/internal/sdalerr"
)

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &sdalerr.IOError{Op: "write " + path, Err: err}
	}
	return nil
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, &sdalerr.IOError{Op: "stat " + path, Err: err}
	}
	return info.Size(), nil
}

func filePathsOf(dir string, names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = filepath.Join(dir, name)
	}
	return out
}
