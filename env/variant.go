package env

import (
	"fmt"
	"strings"
)

// Variant is the naming convention of the environment files.
// The Canonical file has the highest priority, the files prefixed with "<Canonical>."
// are loaded before it.
type Variant struct {
	Name      string
	Canonical string
}

var (
	Default = Variant{Name: "default", Canonical: ".env"}
	Roblox  = Variant{Name: "roblox", Canonical: ".env.roblox"}
)

// Variants lists the supported naming conventions
var Variants = []Variant{Default, Roblox}

// VariantByName returns the variant. The empty name is the Default variant.
func VariantByName(name string) (Variant, error) {
	if len(name) == 0 {
		return Default, nil
	}
	for _, variant := range Variants {
		if variant.Name == name {
			return variant, nil
		}
	}

	names := make([]string, len(Variants))
	for i, variant := range Variants {
		names[i] = variant.Name
	}
	return Variant{}, fmt.Errorf("unknown variant '%s', expected one of: %s", name, strings.Join(names, ", "))
}

// IsCanonical returns true if the file name is the canonical file of the variant
func (variant Variant) IsCanonical(fileName string) bool {
	return fileName == variant.Canonical
}

// Match returns true if the file name is either canonical or suffixed.
func (variant Variant) Match(fileName string) bool {
	return variant.IsCanonical(fileName) || strings.HasPrefix(fileName, variant.Canonical+".")
}

// SuffixedName returns the file name for the given suffix: "<Canonical>.<suffix>".
func (variant Variant) SuffixedName(suffix string) string {
	return variant.Canonical + "." + suffix
}

func (variant Variant) String() string {
	return variant.Name + "(" + variant.Canonical + ")"
}
