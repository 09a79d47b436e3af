package policy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testPolicy = `
package hrbridge

import rego.v1

default allow := false

allow if {
	not startswith(input.tool, "payroll_")
}

allow if {
	startswith(input.tool, "payroll_")
	some s in input.scopes
	s == "payroll:admin"
}
`

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.rego")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNoPolicyAllowsEverything(t *testing.T) {
	e, err := New(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if e.Enabled() {
		t.Fatal("engine should be disabled without a policy file")
	}
	if err := e.Allow(context.Background(), Input{Tool: "payroll_get_payslips"}); err != nil {
		t.Fatalf("Allow: %v", err)
	}
}

func TestPolicyAllowsAndDenies(t *testing.T) {
	e, err := New(context.Background(), writePolicy(t, testPolicy))
	if err != nil {
		t.Fatal(err)
	}

	if err := e.Allow(context.Background(), Input{Tool: "staffing_get_worker"}); err != nil {
		t.Fatalf("staffing tool should be allowed: %v", err)
	}
	if err := e.Allow(context.Background(), Input{Tool: "payroll_get_payslips"}); err == nil {
		t.Fatal("payroll tool without scope should be denied")
	}
	if err := e.Allow(context.Background(), Input{Tool: "payroll_get_payslips", Scopes: []string{"payroll:admin"}}); err != nil {
		t.Fatalf("payroll tool with admin scope should be allowed: %v", err)
	}
}

func TestBrokenPolicyFailsAtLoad(t *testing.T) {
	if _, err := New(context.Background(), writePolicy(t, "package hrbridge\nallow :=")); err == nil {
		t.Fatal("want compile error")
	}
}

func TestMissingPolicyFileFailsAtLoad(t *testing.T) {
	if _, err := New(context.Background(), filepath.Join(t.TempDir(), "nope.rego")); err == nil {
		t.Fatal("want read error")
	}
}
