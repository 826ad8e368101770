package types

import "fmt"

// DataLoadError means a source could not be read or lacks a required column.
// It is fatal for the session.
type DataLoadError struct {
	Source string
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Column != "" && e.Err != nil:
		return fmt.Sprintf("load %s: column %q: %v", e.Source, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: missing column %q", e.Source, e.Column)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// ConfigurationError rejects a single request that names an unknown feature or segment.
type ConfigurationError struct {
	Dataset string
	Kind    string // "feature" or "segment"
	Name    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %q is not recognized for dataset %q", e.Kind, e.Name, e.Dataset)
}
