package domain

import "time"

// TestResultSummary describes one agent test result file. The ID is the file
// name without the .json extension.
type TestResultSummary struct {
	ID              string    `json:"id"`
	TestName        string    `json:"test_name"`
	AgentName       string    `json:"agent_name"`
	TestFunction    string    `json:"test_function"`
	Success         bool      `json:"success"`
	Timestamp       string    `json:"timestamp"`
	ExecutionTimeMS int64     `json:"execution_time_ms"`
	ModifiedAt      time.Time `json:"modified_at"`
}

// TestResult is a full agent test record, served verbatim. Beyond the summary
// fields it may carry iteration, conversation, and tool sub-structures that
// the viewer does not interpret.
type TestResult map[string]any
