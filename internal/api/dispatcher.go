package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Pastarafian/VegaMCP-sub003/internal/graph"
	"github.com/Pastarafian/VegaMCP-sub003/internal/swarm"
)

// Auditor receives a record of every action that succeeds. Implementations
// live outside the engine; recording failures never fail the action.
type Auditor interface {
	RecordOperation(ctx context.Context, action, graphID, detail string) error
}

// Dispatcher decodes action parameters, runs the operation against the
// registry and wraps the outcome in the uniform envelope. It owns the
// request-shape validation the engine itself leaves to its callers.
type Dispatcher struct {
	registry *swarm.Registry
	auditor  Auditor
	debugLog func(format string, args ...interface{})
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(d *Dispatcher)

// WithAuditor wires an operations audit sink.
func WithAuditor(a Auditor) DispatcherOption {
	return func(d *Dispatcher) {
		if a != nil {
			d.auditor = a
		}
	}
}

// WithDebugLog sets the debug logging function.
func WithDebugLog(fn func(format string, args ...interface{})) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.debugLog = fn
		}
	}
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *swarm.Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		debugLog: func(format string, args ...interface{}) {}, // no-op by default
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle runs one action. Every outcome is an envelope; Handle never panics
// and never returns a Go error to the transport.
func (d *Dispatcher) Handle(ctx context.Context, action string, params json.RawMessage) Envelope {
	d.debugLog("[api.Handle] action=%s params=%s", action, params)

	switch action {
	case ActionCreate:
		return d.handleCreate(ctx, params)
	case ActionAddAgent:
		return d.handleAddAgent(ctx, params)
	case ActionAddEdge:
		return d.handleAddEdge(ctx, params)
	case ActionPlan:
		return d.handlePlan(ctx, params)
	case ActionParallelGroups:
		return d.handleParallelGroups(ctx, params)
	case ActionHandoff:
		return d.handleHandoff(ctx, params)
	case ActionSummary:
		return d.handleSummary(ctx, params)
	case ActionList:
		return d.handleList(ctx)
	default:
		return Fail(fmt.Errorf("unknown action %q", action))
	}
}

// decode unmarshals params into v; empty params decode as an empty object.
func decode(action string, params json.RawMessage, v any) error {
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters for %s: %w", action, err)
	}
	return nil
}

func (d *Dispatcher) audit(ctx context.Context, action, graphID, detail string) {
	if d.auditor == nil {
		return
	}
	if err := d.auditor.RecordOperation(ctx, action, graphID, detail); err != nil {
		d.debugLog("[api.audit] action=%s graph=%s record failed: %v", action, graphID, err)
	}
}

func (d *Dispatcher) handleCreate(ctx context.Context, params json.RawMessage) Envelope {
	var p CreateParams
	if err := decode(ActionCreate, params, &p); err != nil {
		return Fail(err)
	}
	if p.Name == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: name is required", ActionCreate))
	}

	g := d.registry.CreateGraph(p.Name)
	d.audit(ctx, ActionCreate, g.ID(), "name="+p.Name)
	return OK(CreateResult{GraphID: g.ID(), Name: g.Name()})
}

func (d *Dispatcher) handleAddAgent(ctx context.Context, params json.RawMessage) Envelope {
	var p AddAgentParams
	if err := decode(ActionAddAgent, params, &p); err != nil {
		return Fail(err)
	}
	if p.GraphID == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: graph_id is required", ActionAddAgent))
	}
	if p.Name == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: name is required", ActionAddAgent))
	}

	node, err := d.registry.AddAgent(p.GraphID, graph.AgentSpec{
		Name:         p.Name,
		Role:         p.Role,
		Capabilities: p.Capabilities,
		Dependencies: p.Dependencies,
		ParentID:     p.ParentID,
	})
	if err != nil {
		return Fail(err)
	}
	d.audit(ctx, ActionAddAgent, p.GraphID, "agent="+node.ID)
	return OK(AddAgentResult{AgentID: node.ID, Name: node.Name})
}

func (d *Dispatcher) handleAddEdge(ctx context.Context, params json.RawMessage) Envelope {
	var p AddEdgeParams
	if err := decode(ActionAddEdge, params, &p); err != nil {
		return Fail(err)
	}
	if p.GraphID == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: graph_id is required", ActionAddEdge))
	}
	if p.From == "" || p.To == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: from and to are required", ActionAddEdge))
	}

	if err := d.registry.AddEdge(p.GraphID, p.From, p.To, p.Type, p.Metadata); err != nil {
		return Fail(err)
	}
	d.audit(ctx, ActionAddEdge, p.GraphID, fmt.Sprintf("%s->%s type=%s", p.From, p.To, p.Type))
	return OK(struct{}{})
}

func (d *Dispatcher) handlePlan(ctx context.Context, params json.RawMessage) Envelope {
	var p GraphParams
	if err := decode(ActionPlan, params, &p); err != nil {
		return Fail(err)
	}
	if p.GraphID == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: graph_id is required", ActionPlan))
	}

	steps, err := d.registry.Plan(p.GraphID)
	if err != nil {
		return Fail(err)
	}
	d.audit(ctx, ActionPlan, p.GraphID, fmt.Sprintf("steps=%d", len(steps)))
	return OK(PlanResult{ExecutionOrder: steps})
}

func (d *Dispatcher) handleParallelGroups(ctx context.Context, params json.RawMessage) Envelope {
	var p GraphParams
	if err := decode(ActionParallelGroups, params, &p); err != nil {
		return Fail(err)
	}
	if p.GraphID == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: graph_id is required", ActionParallelGroups))
	}

	groups, err := d.registry.ParallelGroups(p.GraphID)
	if err != nil {
		return Fail(err)
	}
	d.audit(ctx, ActionParallelGroups, p.GraphID, fmt.Sprintf("levels=%d", len(groups)))
	return OK(GroupsResult{Groups: groups})
}

func (d *Dispatcher) handleHandoff(ctx context.Context, params json.RawMessage) Envelope {
	var p HandoffParams
	if err := decode(ActionHandoff, params, &p); err != nil {
		return Fail(err)
	}
	if p.GraphID == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: graph_id is required", ActionHandoff))
	}
	if p.From == "" || p.To == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: from and to are required", ActionHandoff))
	}

	if err := d.registry.Handoff(p.GraphID, p.From, p.To, p.Data); err != nil {
		return Fail(err)
	}
	d.audit(ctx, ActionHandoff, p.GraphID, fmt.Sprintf("%s->%s", p.From, p.To))
	return OK(struct{}{})
}

func (d *Dispatcher) handleSummary(ctx context.Context, params json.RawMessage) Envelope {
	var p GraphParams
	if err := decode(ActionSummary, params, &p); err != nil {
		return Fail(err)
	}
	if p.GraphID == "" {
		return Fail(fmt.Errorf("invalid parameters for %s: graph_id is required", ActionSummary))
	}

	summary, err := d.registry.Summary(p.GraphID)
	if err != nil {
		return Fail(err)
	}
	d.audit(ctx, ActionSummary, p.GraphID, "")
	return OK(summary)
}

func (d *Dispatcher) handleList(ctx context.Context) Envelope {
	infos := d.registry.List()
	d.audit(ctx, ActionList, "", fmt.Sprintf("graphs=%d", len(infos)))
	return OK(ListResult{Graphs: infos})
}
