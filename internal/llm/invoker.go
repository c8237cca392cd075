package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"enrichly/internal/logger"
)

// InvocationError is returned once all attempts against the model service
// have been exhausted. It carries the attempt count and the last failure.
type InvocationError struct {
	Attempts int
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("model invocation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// IsInvocationError reports whether err wraps an InvocationError.
func IsInvocationError(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}

// InvokerOptions configures retry behavior for model calls.
type InvokerOptions struct {
	MaxAttempts int           // Total attempts before giving up
	BaseDelay   time.Duration // Backoff before attempt n+1 is BaseDelay * 2^(n-1)
	CallTimeout time.Duration // Per-attempt timeout; 0 disables it
}

// DefaultInvokerOptions returns the standard retry policy.
func DefaultInvokerOptions() InvokerOptions {
	return InvokerOptions{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		CallTimeout: 60 * time.Second,
	}
}

// Invoker wraps a TextGenerator with retry and exponential backoff. It is the
// only component of the pipeline that talks to the external model service;
// every generation stage calls through it.
type Invoker struct {
	gen  TextGenerator
	opts InvokerOptions
}

// NewInvoker creates an Invoker around the given generator.
func NewInvoker(gen TextGenerator, opts InvokerOptions) *Invoker {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Invoker{gen: gen, opts: opts}
}

// Invoke runs one generation request, retrying transient failures. Each
// attempt runs under its own timeout so a stalled call is converted into a
// retryable failure instead of blocking a batch slot indefinitely.
func (iv *Invoker) Invoke(ctx context.Context, prompt string, options TextGenerationOptions) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= iv.opts.MaxAttempts; attempt++ {
		response, err := iv.attempt(ctx, prompt, options)
		if err == nil {
			return response, nil
		}
		lastErr = err

		logger.Warn("Model invocation failed",
			"attempt", attempt,
			"max_attempts", iv.opts.MaxAttempts,
			"error", err.Error())

		if attempt < iv.opts.MaxAttempts {
			delay := iv.opts.BaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return "", &InvocationError{Attempts: iv.opts.MaxAttempts, Err: lastErr}
}

func (iv *Invoker) attempt(ctx context.Context, prompt string, options TextGenerationOptions) (string, error) {
	if iv.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.opts.CallTimeout)
		defer cancel()
	}
	return iv.gen.GenerateText(ctx, prompt, options)
}
