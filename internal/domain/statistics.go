package domain

// Statistics is the cost/token/time aggregation written by the pipeline
// (statistics.json). It is served verbatim; nothing in it is normalized.
type Statistics struct {
	TotalExecutionTimeMS  int64                      `json:"total_execution_time_ms"`
	TotalCalls            int                        `json:"total_calls"`
	TotalTokens           int                        `json:"total_tokens"`
	TotalPromptTokens     int                        `json:"total_prompt_tokens"`
	TotalCompletionTokens int                        `json:"total_completion_tokens"`
	TotalCost             float64                    `json:"total_cost"`
	MaxBudget             float64                    `json:"max_budget"`
	BudgetUsedPercent     float64                    `json:"budget_used_percent"`
	Stages                map[string]StageStatistics `json:"stages"`
}

// StageStatistics aggregates one stage of the pipeline.
type StageStatistics struct {
	ExecutionTimeMS int64                 `json:"execution_time_ms"`
	TotalCalls      int                   `json:"total_calls"`
	TotalTokens     int                   `json:"total_tokens"`
	TotalCost       float64               `json:"total_cost"`
	Agents          map[string]AgentUsage `json:"agents"`
}

// AgentUsage aggregates one agent's calls within a stage.
type AgentUsage struct {
	CallCount        int     `json:"call_count"`
	ExecutionTimeMS  int64   `json:"execution_time_ms"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Cost             float64 `json:"cost"`
}
