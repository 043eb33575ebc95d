package freecad

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// MockCall records one invocation seen by the mock caller.
type MockCall struct {
	Method string
	Args   []any
}

// MockCaller is a test double for the XML-RPC transport. Canned replies are
// registered per method name; every invocation is recorded for assertion.
type MockCaller struct {
	mu      sync.Mutex
	replies map[string]any
	errs    map[string]error
	calls   []MockCall
}

// Compile-time check that MockCaller satisfies the Caller interface.
var _ Caller = (*MockCaller)(nil)

// NewMockCaller creates an empty mock. Calls to unregistered methods fail.
func NewMockCaller() *MockCaller {
	return &MockCaller{
		replies: make(map[string]any),
		errs:    make(map[string]error),
	}
}

// Reply registers a canned reply value for method. The value must be
// assignable to the reply target the client passes for that method.
func (m *MockCaller) Reply(method string, value any) *MockCaller {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[method] = value
	return m
}

// Fail registers a transport error for method.
func (m *MockCaller) Fail(method string, err error) *MockCaller {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[method] = err
	return m
}

// Call implements Caller by copying the canned reply into the target.
func (m *MockCaller) Call(ctx context.Context, method string, args []any, reply any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: method, Args: args})

	if err, ok := m.errs[method]; ok {
		return err
	}

	value, ok := m.replies[method]
	if !ok {
		return fmt.Errorf("mock: no reply registered for method %q", method)
	}

	target := reflect.ValueOf(reply)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("mock: reply target for %q must be a non-nil pointer", method)
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(target.Elem().Type()) {
		return fmt.Errorf("mock: reply for %q is %T, target wants %s", method, value, target.Elem().Type())
	}
	target.Elem().Set(v)
	return nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockCaller) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsTo returns the number of invocations of method.
func (m *MockCaller) CallsTo(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}
