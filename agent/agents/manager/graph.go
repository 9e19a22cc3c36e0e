package manager

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/Chative-Learning-Agents/agent/nodes"
	"github.com/tanpawarit/Chative-Learning-Agents/pkg/metrics"
)

func (m *Manager) compileHandleRequestGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, m.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("select_responder",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.SelectResponder(in, m)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node select_responder: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_responder",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			out, err := nodex.DispatchResponder(ctx, in, m.tuning.ProcessTimeout, m.now)
			if err != nil {
				return nil, err
			}
			metrics.DispatchTotal.WithLabelValues(out.Descriptor.Name).Inc()
			metrics.DispatchDuration.WithLabelValues(out.Descriptor.Name).Observe(out.Elapsed.Seconds())
			return out, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_responder: %w", err)
	}

	if err := graph.AddLambdaNode("record_interaction",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RecordInteraction(in, m.newID, m.recordAsync)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_interaction: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "select_responder"},
		{"select_responder", "dispatch_responder"},
		{"dispatch_responder", "record_interaction"},
		{"record_interaction", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("manager.handle_request"))
	if err != nil {
		return nil, fmt.Errorf("compile manager graph: %w", err)
	}
	return runner, nil
}
