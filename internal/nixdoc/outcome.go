package nixdoc

// Status classifies the result of rendering one module.
type Status string

const (
	// StatusRendered means documentation was produced.
	StatusRendered Status = "rendered"
	// StatusSkipped means the module had nothing to document. Distinct from
	// failure so reports can separate "nothing to document" from errors.
	StatusSkipped Status = "skipped"
	// StatusFailed means the external tool reported an error for this module.
	StatusFailed Status = "failed"
)

// Outcome is the tagged result of rendering one module.
type Outcome struct {
	Status  Status
	Content []byte // rendered markdown, only when StatusRendered
	Reason  string // human-readable reason, only when StatusSkipped
	Err     error  // underlying error, only when StatusFailed
}

// Rendered returns a successful outcome carrying the rendered content.
func Rendered(content []byte) Outcome {
	return Outcome{Status: StatusRendered, Content: content}
}

// Skipped returns an outcome for a module with no documentable items.
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Failed returns an outcome for a module the tool could not document.
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}
