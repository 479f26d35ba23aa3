package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn(ctx context.Context) bool { return s.loggedIn }
func (s *stubExec) SignUp(ctx context.Context) error    { s.calls = append(s.calls, "signup"); return nil }
func (s *stubExec) SignIn(ctx context.Context) error    { s.calls = append(s.calls, "signin"); return nil }
func (s *stubExec) SignOut(ctx context.Context) error   { s.calls = append(s.calls, "signout"); return nil }
func (s *stubExec) WhoAmI(ctx context.Context) error    { s.calls = append(s.calls, "whoami"); return nil }
func (s *stubExec) ChangeAdminPassword(ctx context.Context) error {
	s.calls = append(s.calls, "passwd")
	return nil
}
func (s *stubExec) AddItem(ctx context.Context) error { s.calls = append(s.calls, "add"); return nil }
func (s *stubExec) RemoveItem(ctx context.Context, productID string) error {
	s.calls = append(s.calls, "remove "+productID)
	return nil
}
func (s *stubExec) ShowCart(ctx context.Context) error { s.calls = append(s.calls, "cart"); return nil }
func (s *stubExec) Checkout(ctx context.Context) error {
	s.calls = append(s.calls, "checkout")
	return nil
}
func (s *stubExec) Orders(ctx context.Context) error { s.calls = append(s.calls, "orders"); return nil }

func runScript(t *testing.T, exec *stubExec, script string) []string {
	t.Helper()

	origPrintln := printlnFn
	defer func() { printlnFn = origPrintln }()
	var printed []string
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "" }, scanner)
	return printed
}

func TestREPLDispatch(t *testing.T) {
	exec := &stubExec{loggedIn: true}
	runScript(t, exec, "whoami\nadd\nremove p1\ncart\ncheckout\norders\nsignout\nexit\n")

	assert.Equal(t, []string{"whoami", "add", "remove p1", "cart", "checkout", "orders", "signout"}, exec.calls)
}

func TestREPLUnknownCommand(t *testing.T) {
	exec := &stubExec{}
	printed := runScript(t, exec, "frobnicate\nexit\n")

	assert.Empty(t, exec.calls)
	assert.Contains(t, printed, "Unknown command:")
}

func TestREPLHelpDependsOnLogin(t *testing.T) {
	printed := runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(printed, "\n"), "signup, signin")

	printed = runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(printed, "\n"), "checkout")
}

func TestREPLRemoveWithoutArg(t *testing.T) {
	exec := &stubExec{loggedIn: true}
	printed := runScript(t, exec, "remove\nexit\n")

	assert.Empty(t, exec.calls)
	assert.Contains(t, strings.Join(printed, "\n"), "Usage: remove")
}

func TestREPLExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "signin\n")

	assert.Equal(t, []string{"signin"}, exec.calls)
}
