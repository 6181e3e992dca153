package git

import (
	"context"
	"strings"
	"sync"
)

type fakeResult struct {
	out string
	err error
}

// fakeRunner answers git invocations from a script keyed by the joined
// arguments. Unscripted invocations fail the way an unknown ref does.
type fakeRunner struct {
	mu     sync.Mutex
	script map[string]fakeResult
	calls  []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{script: make(map[string]fakeResult)}
}

func (f *fakeRunner) on(cmd, out string) *fakeRunner {
	f.script[cmd] = fakeResult{out: out}
	return f
}

func (f *fakeRunner) fail(cmd, stderr string) *fakeRunner {
	f.script[cmd] = fakeResult{err: &CommandError{
		Args:   strings.Fields(cmd),
		Stderr: stderr,
	}}
	return f
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	cmd := strings.Join(args, " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)

	if res, ok := f.script[cmd]; ok {
		return res.out, res.err
	}
	return "", &CommandError{
		Args:   args,
		Dir:    dir,
		Stderr: "fatal: unscripted command: " + cmd,
	}
}

func (f *fakeRunner) called(cmd string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == cmd {
			return true
		}
	}
	return false
}

func newTestRepo(runner Runner, opts ...Option) *Repo {
	opts = append([]Option{WithRunner(runner), WithFetch(false)}, opts...)
	return NewRepo("/repo", opts...)
}
