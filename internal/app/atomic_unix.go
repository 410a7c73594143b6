//go:build !windows

package app

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic replaces path so readers never see a partial file
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
