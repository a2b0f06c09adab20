package pipeline

// Step names emitted over the progress channel, in pipeline order.
const (
	StepStart          = "processing_start"
	StepNormalize      = "extract_text"
	StepGroup          = "group_data"
	StepExtractDetails = "extract_details"
	StepExtractItems   = "extract_items"
	StepExtractTotal   = "extract_total"
	StepValidate       = "validate"
	StepComplete       = "processing_complete"
)

// Notifier receives progress events keyed by the caller-supplied session id.
// Implementations must not block: the pipeline calls these inline and treats
// the notifier as fire-and-forget.
type Notifier interface {
	Step(sessionID, step, message string)
}

// NopNotifier is used when no progress channel was supplied.
type NopNotifier struct{}

func (NopNotifier) Step(string, string, string) {}
