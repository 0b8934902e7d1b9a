package file

import "os"

// Exists returns a bool indicating whether the specified file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
