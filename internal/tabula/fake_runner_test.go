package tabula

import (
	"context"
	"sync"
)

type call struct {
	name string
	args []string
}

// fakeRunner answers -version with a JVM banner unless probe is set, and
// every other command with result/err.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []call
	probe  func() (Result, error)
	result Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, args: append([]string(nil), args...)})
	if len(args) == 1 && args[0] == "-version" {
		if f.probe != nil {
			return f.probe()
		}
		return Result{Stderr: []byte("openjdk version \"17.0.2\" 2022-01-18\nOpenJDK Runtime Environment")}, nil
	}
	return f.result, f.err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}
