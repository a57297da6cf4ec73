// Package commands synthesises cobra commands from argument and flag
// metadata, and defines the usage errors those commands report.
package commands

// Meta describes a command that can be generated with Generate.
type Meta struct {
	Name        string     // Command name (e.g., "wiki", "add")
	Description string     // Short description
	LongDesc    string     // Long description (for --help)
	Args        []ArgMeta  // Positional arguments, in order
	Flags       []FlagMeta // Command flags
	Examples    []string   // Usage examples
}

// ArgMeta defines a positional argument. Every non-variadic argument is
// required. A variadic argument captures zero or more tokens and must be last.
type ArgMeta struct {
	Name        string
	Description string
	Variadic    bool
}

// FlagMeta defines a command flag.
type FlagMeta struct {
	Name        string   // Flag name (e.g., "print-only")
	Short       string   // Short flag (e.g., "p")
	Description string   // Description
	Type        FlagType // Type of flag
	Default     string   // Default value
}

// FlagType represents the type of a flag.
type FlagType string

const (
	FlagTypeString FlagType = "string"
	FlagTypeBool   FlagType = "bool"
)

// Fixed returns one required argument per name.
func Fixed(names ...string) []ArgMeta {
	args := make([]ArgMeta, len(names))
	for i, n := range names {
		args[i] = ArgMeta{Name: n}
	}
	return args
}

// Variadic returns a single capture-all argument.
func Variadic(name string) []ArgMeta {
	return []ArgMeta{{Name: name, Variadic: true}}
}
