package resources

import (
	"context"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/keypath"
)

var rulesManifest = consolecache.Manifest{
	Namespace:   "rules",
	DetailScope: keypath.ScopeDetail,
	ExtraScopes: []keypath.Scope{
		keypath.ScopeExecutions,
		keypath.ScopeViolations,
		keypath.ScopeDashboard,
		keypath.ScopePerformance,
	},
}

// Rules is the cached accessor for validation rules.
type Rules struct {
	*consolecache.Resource[apitypes.ValidationRule]
}

// NewRules wires the validation-rules namespace.
func NewRules(api consolecache.Transport, store cache.Store, exec *consolecache.Executor) *Rules {
	return &Rules{Resource: consolecache.NewResource[apitypes.ValidationRule](rulesManifest, "/rules", api, store, exec)}
}

// Executions returns the cached evaluation history of a rule.
func (r *Rules) Executions(ctx context.Context, ruleID string, params consolecache.Params) ([]apitypes.RuleExecution, error) {
	return consolecache.ScopeGet[[]apitypes.RuleExecution](ctx, r.Resource, keypath.ScopeExecutions, ruleID, params)
}

// Violations returns the cached violation list of a rule.
func (r *Rules) Violations(ctx context.Context, ruleID string, params consolecache.Params) ([]apitypes.RuleViolation, error) {
	return consolecache.ScopeGet[[]apitypes.RuleViolation](ctx, r.Resource, keypath.ScopeViolations, ruleID, params)
}

// Dashboard returns the cached validation summary.
func (r *Rules) Dashboard(ctx context.Context) (apitypes.RuleDashboard, error) {
	return consolecache.ScopeGet[apitypes.RuleDashboard](ctx, r.Resource, keypath.ScopeDashboard, "", nil)
}

// Performance returns the cached per-rule timing table.
func (r *Rules) Performance(ctx context.Context, params consolecache.Params) ([]apitypes.RulePerformance, error) {
	return consolecache.ScopeGet[[]apitypes.RulePerformance](ctx, r.Resource, keypath.ScopePerformance, "", params)
}

// Execute runs a rule now. On success every executions/violations/dashboard/
// performance read of the namespace is staled along with the rule's detail.
func (r *Rules) Execute(ctx context.Context, ruleID string) (apitypes.RuleExecution, error) {
	var envelope apitypes.Envelope[apitypes.RuleExecution]
	if err := r.Do(ctx, ruleID, "execute", nil, &envelope); err != nil {
		return apitypes.RuleExecution{}, err
	}
	return envelope.Data, nil
}
