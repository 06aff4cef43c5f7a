package model

// Actions recorded for a written file.
const (
	ActionCreate    = "create"
	ActionOverwrite = "overwrite"
)

// FileBlock is a single (path, content) unit extracted from a source document.
type FileBlock struct {
	Path    string
	Content string
	Lang    string // Fence info string, e.g. "go". Informational only.
}

// WriteResult is the outcome of materializing one block.
type WriteResult struct {
	Path   string
	Action string
	Err    error
}

// Failure pairs a path with the reason it could not be written.
type Failure struct {
	Path   string
	Reason string
}

// Report holds the results of a run for display.
type Report struct {
	Found        int
	Created      []string
	Overwritten  []string
	Failed       []Failure
	Unterminated []string
	Reloaded     []string // Buffers reloaded in a running editor.
	Message      string
}

// Succeeded returns the number of files written.
func (r Report) Succeeded() int {
	return len(r.Created) + len(r.Overwritten)
}

// NewReport folds write results into a report, preserving their order.
func NewReport(found int, results []WriteResult) Report {
	report := Report{Found: found}
	for _, res := range results {
		if res.Err != nil {
			report.Failed = append(report.Failed, Failure{Path: res.Path, Reason: res.Err.Error()})
			continue
		}
		if res.Action == ActionOverwrite {
			report.Overwritten = append(report.Overwritten, res.Path)
		} else {
			report.Created = append(report.Created, res.Path)
		}
	}
	return report
}
