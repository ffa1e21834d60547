// Package arg is used to read command line arguments of the application.
//
// The arguments are composed of the command name, positional arguments
// and the flags. A flag is composed of name and optionally a value: --name=value.
//
// Parse(args) returns the command
// ParseOS() returns the command from the process arguments
// IsFlag(str) returns true if the given string has a prefix
// NewFlag(name string, values ...string) returns a new flag by its name
// ExtractFlagName(flag) returns the flag name.
// ExtractFlagValue(flag) returns the value of the flag.
package arg

import (
	"os"
	"strings"
)

const (
	Prefix = "--"
	Sep    = "="
)

// Command is the parsed command line
type Command struct {
	Name  string   // the first argument that is not a flag
	Args  []string // the rest of the arguments that are not flags
	Flags []string // flags without the prefix
}

// Parse splits the arguments into the command name, positional arguments and flags.
// The arguments shouldn't include the program name.
func Parse(args []string) Command {
	command := Command{
		Args:  make([]string, 0),
		Flags: Flags(args),
	}

	for _, str := range args {
		if IsFlag(str) {
			continue
		}
		if len(command.Name) == 0 {
			command.Name = str
			continue
		}
		command.Args = append(command.Args, str)
	}

	return command
}

// ParseOS parses the arguments of the process
func ParseOS() Command {
	return Parse(os.Args[1:])
}

// NewFlag creates a new flag with the given name and optionally with a value
func NewFlag(name string, values ...string) string {
	flag := Prefix + name
	if len(values) > 0 {
		flag += Sep + values[0]
	}

	return flag
}

// Flags returns the flags without the prefix.
func Flags(args []string) []string {
	flags := make([]string, 0, len(args))
	for _, str := range args {
		if IsFlag(str) {
			flags = append(flags, strings.TrimPrefix(str, Prefix))
		}
	}

	return flags
}

// IsFlag returns true, if the given string contains a flag prefix
func IsFlag(str string) bool {
	return strings.HasPrefix(str, Prefix) && len(str) > len(Prefix)
}

// ExtractFlagName returns the flag name.
// If the flag is prefixed, then it will be trimmed.
func ExtractFlagName(flag string) string {
	return strings.SplitN(strings.TrimPrefix(flag, Prefix), Sep, 2)[0]
}

// ExtractFlagValue Extracts the value of the flag if it exists.
// The value may contain the separator.
func ExtractFlagValue(flag string) string {
	parts := strings.SplitN(flag, Sep, 2)
	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}

// FlagExist is given flag exists or not.
func (command Command) FlagExist(name string) bool {
	for _, flag := range command.Flags {
		if ExtractFlagName(flag) == name {
			return true
		}
	}

	return false
}

// FlagValue returns the value of the flag, or an empty string.
func (command Command) FlagValue(name string) string {
	for _, flag := range command.Flags {
		if ExtractFlagName(flag) == name {
			return ExtractFlagValue(flag)
		}
	}

	return ""
}

// Arg returns the i-th positional argument, or an empty string.
func (command Command) Arg(i int) string {
	if i < 0 || i >= len(command.Args) {
		return ""
	}
	return command.Args[i]
}
