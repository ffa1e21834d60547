// Package env loads the environment files of the working directory.
//
// The files are merged in the load order returned by Discover:
// the values of the later files override the earlier ones.
// Each file is set into the process environment before the next one is read,
// so ${VAR} in a file expands to the value of the earlier files.
// Loading never fails; every problem is kept in the Result as a warning.
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ahmetson/envboot/log"
	"github.com/joho/godotenv"
)

// File is the outcome of loading one environment file
type File struct {
	Name string
	Path string
	Keys []string // sorted keys defined in the file
	Err  error
}

// Loaded returns true if the file was parsed
func (file File) Loaded() bool {
	return file.Err == nil
}

// Result of the loading
type Result struct {
	Dir     string
	Variant Variant
	DirErr  error             // set if the directory couldn't be listed
	Files   []File            // in the load order
	Vars    map[string]string // merged variables
	Sources map[string]string // variable name => file name that set it
}

// Load reads the environment files of the variant in the dir
// and sets their variables into the process environment, overwriting the existing ones.
// The progress is printed by the logger.
func Load(dir string, variant Variant, logger *log.Logger) *Result {
	result := &Result{
		Dir:     dir,
		Variant: variant,
		Files:   make([]File, 0),
		Vars:    make(map[string]string),
		Sources: make(map[string]string),
	}

	names, err := Discover(dir, variant)
	if err != nil {
		result.DirErr = err
		logger.Warn("skip environment files, can not list the directory", "dir", dir, "error", err)
		return result
	}
	if len(names) == 0 {
		logger.Debug("no environment files", "dir", dir, "canonical", variant.Canonical)
		return result
	}

	for _, name := range names {
		file := result.load(name)
		if file.Loaded() {
			logger.Info("loaded environment file", "file", name, "keys", len(file.Keys))
		} else {
			logger.Warn("failed to load environment file", "file", name, "error", file.Err)
		}
		result.Files = append(result.Files, file)
	}

	return result
}

func (result *Result) load(name string) File {
	file := File{
		Name: name,
		Path: filepath.Join(result.Dir, name),
	}

	vars, err := godotenv.Read(file.Path)
	if err != nil {
		file.Err = fmt.Errorf("godotenv.Read: %w", err)
		return file
	}
	if len(result.Vars) > 0 {
		vars, err = result.expand(file.Path, vars)
		if err != nil {
			file.Err = fmt.Errorf("expand: %w", err)
			return file
		}
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := os.Setenv(key, vars[key]); err != nil {
			file.Err = fmt.Errorf("os.Setenv('%s'): %w", key, err)
			return file
		}
	}

	file.Keys = keys
	for _, key := range keys {
		result.Vars[key] = vars[key]
		result.Sources[key] = name
	}

	return file
}

// quoteEscaper escapes the value for the double-quoted dotenv value.
// The dollar sign is escaped so the value is never expanded twice.
var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`, "\r", `\r`)

// expand parses the file again with the variables of the earlier files defined on top of it.
// godotenv expands ${VAR} only with the variables of the same file.
// Returns the values of the keys defined in the file.
func (result *Result) expand(filePath string, vars map[string]string) (map[string]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var seeded strings.Builder
	for _, key := range result.Keys() {
		value := result.Vars[key]
		// godotenv can't read back a quoted value ending with a backslash or a quote
		if strings.HasSuffix(value, `\`) || strings.HasSuffix(value, `"`) {
			continue
		}
		seeded.WriteString(key + `="` + quoteEscaper.Replace(value) + "\"\n")
	}
	seeded.Write(content)

	merged, err := godotenv.Unmarshal(seeded.String())
	if err != nil {
		return nil, fmt.Errorf("godotenv.Unmarshal: %w", err)
	}

	expanded := make(map[string]string, len(vars))
	for key := range vars {
		expanded[key] = merged[key]
	}
	return expanded, nil
}

// Warnings returns the errors that were bypassed during the loading.
func (result *Result) Warnings() []error {
	warnings := make([]error, 0)
	if result.DirErr != nil {
		warnings = append(warnings, result.DirErr)
	}
	for _, file := range result.Files {
		if file.Err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", file.Name, file.Err))
		}
	}
	return warnings
}

// Keys returns the merged variable names sorted
func (result *Result) Keys() []string {
	keys := make([]string, 0, len(result.Vars))
	for key := range result.Vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the merged value of the variable.
func (result *Result) Lookup(key string) (string, bool) {
	value, ok := result.Vars[key]
	return value, ok
}

// WriteEnv writes the given key value to the file.
// If the file exists, then it will be truncated.
func WriteEnv(data map[string]string, path string) error {
	err := godotenv.Write(data, path)
	if err != nil {
		return fmt.Errorf("godotenv.Write: %w", err)
	}

	return nil
}
