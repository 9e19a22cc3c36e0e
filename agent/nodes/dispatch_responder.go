package nodes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// DispatchResponder runs Process on the selected responder. A returned error,
// a panic or an expired timeout all fail the dispatch.
func DispatchResponder(
	ctx context.Context,
	in *GraphState,
	timeout time.Duration,
	nowFn func() time.Time,
) (*GraphState, error) {
	if in == nil || in.Responder == nil {
		return nil, fmt.Errorf("%w: no responder selected", contractx.ErrDispatch)
	}

	start := nowFn()
	resp, err := invokeResponder(ctx, in.Responder, in.Descriptor.Name, in.Request, timeout)
	if err != nil {
		return nil, err
	}

	in.Response = normalizeResponse(resp)
	in.Elapsed = nowFn().Sub(start)
	return in, nil
}

func invokeResponder(
	ctx context.Context,
	r contractx.Responder,
	name string,
	req contractx.Request,
	timeout time.Duration,
) (contractx.Response, error) {
	if timeout <= 0 {
		return safeProcess(ctx, r, name, req)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		resp contractx.Response
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		resp, err := safeProcess(ctx, r, name, req)
		done <- outcome{resp: resp, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return contractx.Response{}, timeoutError(name, timeout)
		}
		return out.resp, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return contractx.Response{}, timeoutError(name, timeout)
		}
		return contractx.Response{}, fmt.Errorf("%w: agent=%s: %v", contractx.ErrDispatch, name, ctx.Err())
	}
}

func timeoutError(name string, timeout time.Duration) error {
	return fmt.Errorf("%w: agent=%s after %s", contractx.ErrProcessTimeout, name, timeout)
}

func safeProcess(ctx context.Context, r contractx.Responder, name string, req contractx.Request) (resp contractx.Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			resp, err = contractx.Response{}, fmt.Errorf("%w: agent=%s: %v", contractx.ErrResponderPanic, name, rec)
		}
	}()

	resp, err = r.Process(ctx, req)
	if err != nil {
		return contractx.Response{}, fmt.Errorf("%w: agent=%s: %w", contractx.ErrDispatch, name, err)
	}
	return resp, nil
}

// normalizeResponse keeps confidence within [0,1] whatever the responder reported.
func normalizeResponse(resp contractx.Response) contractx.Response {
	switch {
	case math.IsNaN(resp.Confidence) || resp.Confidence < 0:
		resp.Confidence = 0
	case resp.Confidence > 1:
		resp.Confidence = 1
	}
	return resp
}
