package nodes

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrDispatch)
	}
	return GraphOutput{
		Result: contractx.Result{
			Response:  in.Response,
			AgentUsed: in.Descriptor.Name,
		},
	}, nil
}
