package git

import (
	"context"
	"strings"
)

// fakeCall is one recorded Run invocation
type fakeCall struct {
	Name string
	Args []string
}

// fakeRunner returns canned results keyed by the joined argument list
// and records every call. Nothing is executed.
type fakeRunner struct {
	results map[string]Result
	errs    map[string]error
	calls   []fakeCall
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: make(map[string]Result),
		errs:    make(map[string]error),
	}
}

func (f *fakeRunner) on(args string, exitCode int, output string) *fakeRunner {
	f.results[args] = Result{ExitCode: exitCode, Output: []byte(output)}
	return f
}

func (f *fakeRunner) fail(args string, err error) *fakeRunner {
	f.errs[args] = err
	return f
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.calls = append(f.calls, fakeCall{Name: name, Args: args})
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return Result{ExitCode: -1}, err
	}
	if res, ok := f.results[key]; ok {
		return res, nil
	}
	return Result{ExitCode: 0}, nil
}

func (f *fakeRunner) commands() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.Name+" "+strings.Join(c.Args, " "))
	}
	return out
}
