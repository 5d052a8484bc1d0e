package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// writeTestConfig writes a config pointing at a temp SQLite file and
// returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "manna.yaml")
	dbPath := filepath.Join(dir, "manna.db")
	yaml := fmt.Sprintf("database:\n  driver: sqlite\n  path: %s\n", dbPath)
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

// run executes the root command with args, returning combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "manna dev") {
		t.Errorf("expected output to contain 'manna dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestRootCmdHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	if !strings.Contains(out, "Manna") {
		t.Errorf("expected help output to contain 'Manna', got: %s", out)
	}
	for _, sub := range []string{"serve", "schedule", "plan", "send", "ask", "state"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help output to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestExecuteSuccess(t *testing.T) {
	code := execute(newRootCmd())
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestExecuteError(t *testing.T) {
	cmd := &cobra.Command{
		Use:           "failing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("intentional error")
		},
	}
	code := execute(cmd)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}

func TestDBInitCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := run(t, "db", "init", "-c", cfgPath)
	if err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if !strings.Contains(out, "Migrated 3 tables") {
		t.Errorf("expected migration report, got: %s", out)
	}
}

func TestScheduleLifecycleCmds(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := run(t, "schedule", "add", "-c", cfgPath,
		"--book", "John", "--chapter", "3", "--verse", "16",
		"--at", "07:30", "--to", "+15551234567")
	if err != nil {
		t.Fatalf("schedule add failed: %v", err)
	}
	if !strings.Contains(out, "Scheduled John 3:16 for +15551234567 at 07:30") {
		t.Errorf("unexpected add output: %s", out)
	}

	out, err = run(t, "schedule", "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("schedule list failed: %v", err)
	}
	if !strings.Contains(out, "John 3:16") || !strings.Contains(out, "07:30") {
		t.Errorf("unexpected list output: %s", out)
	}

	out, err = run(t, "schedule", "delete", "-c", cfgPath, "1")
	if err != nil {
		t.Fatalf("schedule delete failed: %v", err)
	}
	if !strings.Contains(out, "Deleted schedule 1") {
		t.Errorf("unexpected delete output: %s", out)
	}

	out, err = run(t, "schedule", "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("schedule list failed: %v", err)
	}
	if !strings.Contains(out, "No pending schedules") {
		t.Errorf("expected empty list after delete, got: %s", out)
	}
}

func TestScheduleAddRejectsBadTime(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := run(t, "schedule", "add", "-c", cfgPath,
		"--book", "John", "--chapter", "3", "--verse", "16",
		"--at", "7:30", "--to", "+15551234567")
	if err == nil {
		t.Fatal("expected error for non-padded time")
	}
}

func TestPlanCmds(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := run(t, "plan", "add", "-c", cfgPath,
		"--book", "Psalms", "--chapter", "23", "--verse", "1", "--end-verse", "6")
	if err != nil {
		t.Fatalf("plan add failed: %v", err)
	}
	if !strings.Contains(out, "Added Psalms 23:1-6 to the reading plan") {
		t.Errorf("unexpected add output: %s", out)
	}

	out, err = run(t, "plan", "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("plan list failed: %v", err)
	}
	if !strings.Contains(out, "Psalms 23:1-6") {
		t.Errorf("unexpected list output: %s", out)
	}

	// Plan entries are not schedules.
	out, err = run(t, "schedule", "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("schedule list failed: %v", err)
	}
	if !strings.Contains(out, "No pending schedules") {
		t.Errorf("expected plan entries excluded from schedules, got: %s", out)
	}
}

func TestStateCmds(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := run(t, "state", "get", "-c", cfgPath, "recipient_number")
	if err != nil {
		t.Fatalf("state get failed: %v", err)
	}
	if !strings.Contains(out, "not set") {
		t.Errorf("expected unset report, got: %s", out)
	}

	if _, err := run(t, "state", "set", "-c", cfgPath, "recipient_number", "+15559876543"); err != nil {
		t.Fatalf("state set failed: %v", err)
	}

	out, err = run(t, "state", "get", "-c", cfgPath, "recipient_number")
	if err != nil {
		t.Fatalf("state get failed: %v", err)
	}
	if !strings.Contains(out, "+15559876543") {
		t.Errorf("expected saved value, got: %s", out)
	}
}

func TestAskCmdFallsBackWithoutAI(t *testing.T) {
	cfgPath := writeTestConfig(t)
	t.Setenv("OPENAI_API_KEY", "")

	out, err := run(t, "ask", "-c", cfgPath, "What does John 3:16 mean?")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if !strings.Contains(out, "trouble responding") {
		t.Errorf("expected fallback answer, got: %s", out)
	}
}

func TestSendCmdRequiresTwilioCredentials(t *testing.T) {
	cfgPath := writeTestConfig(t)
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	_, err := run(t, "send", "-c", cfgPath,
		"--book", "John", "--chapter", "3", "--verse", "16", "--to", "+15551234567")
	if err == nil {
		t.Fatal("expected error without Twilio credentials")
	}
}
