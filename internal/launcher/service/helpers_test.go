package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/options"
	"github.com/nemanja-m/gomr-hadoop/internal/processors"
	"github.com/nemanja-m/gomr-hadoop/internal/shared/logging"
)

// mockLogger is a no-op logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}
func (m *mockLogger) Fatal(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logging.Logger { return m }

// recordingLogger keeps warning messages
type recordingLogger struct {
	mockLogger
	warnings []string
}

func (r *recordingLogger) Warn(msg string, args ...any) {
	r.warnings = append(r.warnings, msg)
}

func (r *recordingLogger) With(args ...any) logging.Logger { return r }

// fakeShell records commands instead of running them
type fakeShell struct {
	commands []string
	fail     map[string]error
}

func (s *fakeShell) Run(ctx context.Context, command string, stdout, stderr io.Writer) error {
	s.commands = append(s.commands, command)
	if err, ok := s.fail[command]; ok {
		return err
	}
	return nil
}

func noEnv(string) (string, bool) {
	return "", false
}

// storeWith builds an option store from name/value pairs, in order.
func storeWith(pairs ...any) *options.Store {
	s := options.NewStore(options.Definitions())
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i].(string), pairs[i+1])
	}
	return s
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	return path
}

func newTestLauncher(registry core.ProcessorRegistry, shell core.Shell, stdout io.Writer, logger logging.Logger) *Launcher {
	return NewLauncher(
		registry,
		NewLocalBuilder(),
		NewClusterBuilderWithEnv(noEnv),
		NewController(shell, stdout, io.Discard, logger),
		logger,
	)
}

// plan resolves args against a fresh default registry.
func plan(t *testing.T, args []string, opts *options.Store) (*core.Plan, error) {
	t.Helper()
	l := newTestLauncher(processors.NewDefaultRegistry(), &fakeShell{}, io.Discard, &mockLogger{})
	return l.Plan(args, opts)
}

func mustPlan(t *testing.T, args []string, opts *options.Store) *core.Plan {
	t.Helper()
	p, err := plan(t, args, opts)
	require.NoError(t, err)
	return p
}

func mapperCommand(p *core.Plan) string {
	return ProcessorCommand(p.Resolution.Mapper, p.Mode, p.Options)
}

func reducerCommand(p *core.Plan) string {
	return ProcessorCommand(p.Resolution.Reducer, p.Mode, p.Options)
}
