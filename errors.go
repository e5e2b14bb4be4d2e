package signgen

import "strconv"

// ValidationError reports a parameter outside its allowed range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// GeometryError reports a failed or degenerate kernel operation, most
// commonly a text cutout that removed all material from the top layer.
type GeometryError struct {
	Op      string
	Details string
}

func (e *GeometryError) Error() string {
	return "geometry error during " + e.Op + ": " + e.Details
}

// ExportError reports a failed STL export together with human-readable
// suggestions for fixing the parameters.
type ExportError struct {
	Layer       string
	Reason      string
	Suggestions []string
}

func (e *ExportError) Error() string {
	msg := "failed to export " + e.Layer + " layer: " + e.Reason
	for _, s := range e.Suggestions {
		msg += "\n  - " + s
	}
	return msg
}

// FontError reports a font that could not be loaded or parsed.
type FontError struct {
	Name   string
	Reason string
}

func (e *FontError) Error() string {
	return "font " + strconv.Quote(e.Name) + ": " + e.Reason
}
