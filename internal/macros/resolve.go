package macros

import "errors"

// Option configures Resolve.
type Option func(*resolveOptions)

type resolveOptions struct {
	warn func(error)
}

// WithWarningHandler sets the function that receives malformed-definition
// warnings. By default they are dropped.
func WithWarningHandler(fn func(error)) Option {
	return func(o *resolveOptions) {
		if fn != nil {
			o.warn = fn
		}
	}
}

// Resolve parses every file in paths, in order, and folds the definitions
// into a table where later definitions replace earlier ones.
// Malformed lines are reported to the warning handler and skipped.
// A missing or unreadable file aborts resolution with a *FileAccessError
// and no table.
func Resolve(paths []string, opts ...Option) (*Table, error) {
	o := resolveOptions{warn: func(error) {}}
	for _, opt := range opts {
		opt(&o)
	}

	var defs []Definition
	for _, path := range paths {
		for def, err := range ParseFile(path) {
			if err != nil {
				if errors.Is(err, ErrFileAccess) {
					return nil, err
				}
				o.warn(err)
				continue
			}
			defs = append(defs, def)
		}
	}
	return NewTable(defs), nil
}
