package apitypes

import "time"

// ValidationRule is a data quality rule evaluated against the knowledge
// graph.
type ValidationRule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Severity    string    `json:"severity"`
	Expression  string    `json:"expression"`
	TargetClass string    `json:"target_class,omitempty"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RuleExecution is one evaluation run of a validation rule.
type RuleExecution struct {
	ID         string     `json:"id"`
	RuleID     string     `json:"rule_id"`
	Status     string     `json:"status"`
	Checked    int        `json:"checked"`
	Failed     int        `json:"failed"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// RuleViolation is one record that failed a validation rule.
type RuleViolation struct {
	ID          string    `json:"id"`
	RuleID      string    `json:"rule_id"`
	ExecutionID string    `json:"execution_id"`
	EntityID    string    `json:"entity_id"`
	Message     string    `json:"message"`
	DetectedAt  time.Time `json:"detected_at"`
}

// RuleDashboard is the summary view shown on the validation dashboard.
type RuleDashboard struct {
	TotalRules      int            `json:"total_rules"`
	EnabledRules    int            `json:"enabled_rules"`
	OpenViolations  int            `json:"open_violations"`
	BySeverity      map[string]int `json:"by_severity"`
	LastExecutionAt *time.Time     `json:"last_execution_at,omitempty"`
}

// RulePerformance carries per-rule evaluation timings.
type RulePerformance struct {
	RuleID        string        `json:"rule_id"`
	Executions    int           `json:"executions"`
	AvgDuration   time.Duration `json:"avg_duration_ns"`
	WorstDuration time.Duration `json:"worst_duration_ns"`
	FailureRate   float64       `json:"failure_rate"`
}

// CreateRuleRequest is the payload for creating a validation rule.
type CreateRuleRequest struct {
	Name        string `json:"name"`
	Severity    string `json:"severity"`
	Expression  string `json:"expression"`
	TargetClass string `json:"target_class,omitempty"`
}

// UpdateRuleRequest is the payload for updating a validation rule.
type UpdateRuleRequest struct {
	Name       *string `json:"name,omitempty"`
	Severity   *string `json:"severity,omitempty"`
	Expression *string `json:"expression,omitempty"`
	Enabled    *bool   `json:"enabled,omitempty"`
}
