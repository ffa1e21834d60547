// Package path resolves the directories and files the bootstrap is working with.
package path

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fallback is used when the working directory can not be resolved.
const Fallback = "."

// CurrentDir returns the working directory of the process.
// If the directory can't be resolved (deleted, no permission), then it returns Fallback
// along with the error, so the caller may still continue.
func CurrentDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return Fallback, fmt.Errorf("os.Getwd: %w", err)
	}
	return dir, nil
}

// AbsDir returns the absolute path of the dir.
// If the directory is not absolute, then it will make an absolute path from the current directory.
func AbsDir(currentDir string, dirPath string) string {
	if filepath.IsAbs(dirPath) {
		return dirPath
	}

	return filepath.Join(currentDir, dirPath)
}

// FileName returns the file name by removing the directory path
func FileName(filePath string) string {
	return filepath.Base(filePath)
}

// IsRegularFile returns true if the path points to a regular file.
// Symbolic links are followed, so a broken link is not a regular file.
func IsRegularFile(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FileExist returns true if the file exists. if the path is a directory, it will return an error.
func FileExist(fileDir string) (bool, error) {
	info, err := os.Stat(fileDir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("os.Stat('%s'): %w", fileDir, err)
	}

	if info.IsDir() {
		return false, fmt.Errorf("fileDir('%s') is directory", fileDir)
	}

	return true, nil
}
