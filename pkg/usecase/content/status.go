package content

// Status is the pipeline's position within one invocation, logged on
// every transition.
type Status string

const (
	StatusPending    Status = "pending"
	StatusScraping   Status = "scraping"
	StatusExtracting Status = "extracting"
	StatusGenerating Status = "generating"
	StatusSaving     Status = "saving"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)
