package prompt

import "strings"

// Source records where a resolved parameter value came from.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourcePrompted Source = "prompted"
	SourceDefault  Source = "default"
)

// Value is a resolved parameter.
type Value struct {
	Str    string
	Source Source
}

// ArgSet is the invocation's view of its named arguments. Resolution
// writes the final value back so downstream code sees a consistent set.
type ArgSet map[string]string

// Get returns the current value for name, or "" when unset.
func (a ArgSet) Get(name string) string {
	if a == nil {
		return ""
	}
	return a[name]
}

// Set records the value for name.
func (a ArgSet) Set(name, value string) {
	if a != nil {
		a[name] = value
	}
}

// Asker displays a question and returns the operator's answer.
// Suggestions seed autocompletion; an empty answer means "take the
// default". Implementations must be safe to replace with a scripted
// stub in tests.
type Asker interface {
	Ask(question string, suggestions []string, defaultValue string) (string, error)
}

// Options controls how a single parameter is resolved.
type Options struct {
	// Question shown when the value has to be prompted for.
	Question string

	// Allowed restricts the value to a fixed set. Empty means any
	// value passes.
	Allowed []string

	// Default is used when the operator answers with an empty line.
	Default string

	// Suggestions seed prompt autocompletion.
	Suggestions []string
}

// Resolver fills in missing or invalid parameters, preferring explicit
// values over interactively prompted ones.
type Resolver struct {
	asker Asker
}

// NewResolver creates a resolver using the given interactive provider.
func NewResolver(asker Asker) *Resolver {
	return &Resolver{asker: asker}
}

// Resolve returns the final value for the named parameter. An explicit
// non-empty value wins and is validated against opts.Allowed; otherwise
// the asker is consulted, falling back to opts.Default on an empty
// answer. The resolved value is written back into args.
func (r *Resolver) Resolve(args ArgSet, name, explicit string, opts Options) (Value, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		if err := validateAllowed(name, explicit, opts.Allowed); err != nil {
			return Value{}, err
		}
		args.Set(name, explicit)
		return Value{Str: explicit, Source: SourceExplicit}, nil
	}

	question := opts.Question
	if question == "" {
		question = "Enter " + name
	}
	answer, err := r.asker.Ask(question, opts.Suggestions, opts.Default)
	if err != nil {
		return Value{}, err
	}
	answer = strings.TrimSpace(answer)

	source := SourcePrompted
	if answer == "" {
		answer = opts.Default
		source = SourceDefault
	}
	if err := validateAllowed(name, answer, opts.Allowed); err != nil {
		return Value{}, err
	}

	args.Set(name, answer)
	return Value{Str: answer, Source: source}, nil
}

// ResolveEnum resolves a parameter constrained to a fixed allowed set.
// Suggestions default to the allowed values themselves.
func (r *Resolver) ResolveEnum(args ArgSet, name, explicit string, allowed []string, defaultValue string) (Value, error) {
	return r.Resolve(args, name, explicit, Options{
		Allowed:     allowed,
		Default:     defaultValue,
		Suggestions: allowed,
	})
}

func validateAllowed(name, value string, allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &InvalidInputError{Name: name, Value: value, Allowed: allowed}
}
