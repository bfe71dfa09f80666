package document

import (
	"fmt"
	"os"
)

// OSReader is the default interfaces.FileReader backed by the local
// filesystem.
type OSReader struct{}

// ReadText returns the full contents of the file at path.
func (OSReader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
