package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spherical/question-splitter/internal/domain"
)

// maxInputSize bounds documents read fully into memory.
const maxInputSize = 200 * 1024 * 1024

// Validator checks input document paths before extraction.
type Validator struct {
	extensions []string
}

// NewValidator creates a validator accepting the given lowercase extensions (".pdf", ".txt").
func NewValidator(extensions ...string) *Validator {
	return &Validator{extensions: extensions}
}

// ValidatePath checks that path names a readable regular file with an accepted extension.
// Every failure is a SourceUnavailable error.
func (v *Validator) ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.SourceUnavailable("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.SourceUnavailable(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return domain.SourceUnavailable(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.SourceUnavailable(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	if len(v.extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		accepted := false
		for _, e := range v.extensions {
			if ext == e {
				accepted = true
				break
			}
		}
		if !accepted {
			return domain.SourceUnavailable(
				fmt.Sprintf("unsupported file extension %q (want one of %s)", ext, strings.Join(v.extensions, ", ")), nil)
		}
	}

	if info.Size() > maxInputSize {
		return domain.SourceUnavailable(fmt.Sprintf("file is too large (%d MB): %s", info.Size()/(1024*1024), path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.SourceUnavailable(fmt.Sprintf("cannot open file: %s", path), err)
	}
	file.Close()

	return nil
}
