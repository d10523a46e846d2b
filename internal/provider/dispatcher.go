package provider

import (
	"context"
	"fmt"
)

// Dispatcher resolves the configured provider type to a concrete backend and
// normalizes every outcome into a DispatchResult. It holds no mutable state;
// each call is a single-shot request/response with no retries.
type Dispatcher struct {
	cfg      Config
	business Backend
	personal Backend
}

func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid provider type %q", cfg.Type)
	}

	business, err := NewBusinessProvider(cfg)
	if err != nil {
		return nil, err
	}
	personal, err := NewPersonalProvider(cfg)
	if err != nil {
		return nil, err
	}

	return NewDispatcherWithBackends(cfg, business, personal)
}

func NewDispatcherWithBackends(cfg Config, business Backend, personal Backend) (*Dispatcher, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid provider type %q", cfg.Type)
	}
	if business == nil || personal == nil {
		return nil, fmt.Errorf("both backends are required")
	}

	return &Dispatcher{
		cfg:      cfg,
		business: business,
		personal: personal,
	}, nil
}

// Dispatch normalizes the recipient number, forwards the message to the
// selected backend under the configured timeout, and folds every failure
// into the result so callers always get a well-formed outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, msg OutboundMessage) DispatchResult {
	if d == nil {
		return failedResult("dispatcher is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	msg.Phone = NormalizePhone(msg.Phone)
	if err := msg.Validate(); err != nil {
		return failedResult(err.Error())
	}

	timeout := sendTimeout(d.cfg)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	receipt, err := d.backend().Send(ctx, msg)
	if err != nil {
		if IsTimeout(err) {
			return failedResult(fmt.Sprintf("send timed out after %s: %s", timeout, err))
		}
		return failedResult(err.Error())
	}
	if receipt == nil {
		return failedResult("backend returned no receipt")
	}

	status := StatusSent
	if receipt.Simulated {
		status = StatusSimulated
	}

	return DispatchResult{
		Success:   true,
		MessageID: receipt.MessageID,
		Status:    status,
	}
}

// Status reports the selected backend's identity and whether its required
// credentials are present, without any network I/O.
func (d *Dispatcher) Status() Status {
	return d.backend().Status()
}

func (d *Dispatcher) backend() Backend {
	if d.cfg.Type == TypeBusiness {
		return d.business
	}
	return d.personal
}

func failedResult(detail string) DispatchResult {
	return DispatchResult{
		Success: false,
		Status:  StatusFailed,
		Error:   detail,
	}
}
