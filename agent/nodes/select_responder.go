package nodes

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// Selector picks exactly one responder for a request. It must not perform I/O.
type Selector interface {
	Select(req contractx.Request) contractx.Responder
}

func SelectResponder(in *GraphState, sel Selector) (out *GraphState, err error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrDispatch)
	}

	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrSelection, rec)
		}
	}()

	resp := sel.Select(in.Request)
	if resp == nil {
		return nil, fmt.Errorf("%w: no responder available", ErrSelection)
	}

	in.Responder = resp
	in.Descriptor = resp.Info()
	return in, nil
}
