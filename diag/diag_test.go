package diag

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorRendersRootCauseFirst(t *testing.T) {
	d := New(Undefined, "name %q", "foo")
	got := d.Error()
	if !strings.HasPrefix(got, "undefined identifier: name \"foo\"") {
		t.Fatalf("Error() = %q, expected root cause first", got)
	}
}

func TestWrapAccumulatesBreadcrumbsOutward(t *testing.T) {
	root := New(OccursCheck, "β0 occurs in β0 → int")
	wrapped := Wrap(root, "unifying application %s", "f x")
	wrapped2 := Wrap(wrapped, "inferring let binding %s", "g")

	got := wrapped2.Error()
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], "occurs check failed") {
		t.Fatalf("expected root cause on first line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "unifying application") {
		t.Fatalf("expected innermost breadcrumb second, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "inferring let binding") {
		t.Fatalf("expected outermost breadcrumb last, got %q", lines[2])
	}
}

func TestWrapPreservesKindAndSupportsErrorsAs(t *testing.T) {
	root := New(ReturnOutsideFunction, "return at top level")
	wrapped := Wrap(root, "inferring statement 2")

	var d *Diagnostic
	if !errors.As(wrapped, &d) {
		t.Fatalf("expected errors.As to find the Diagnostic")
	}
	if d.Kind != ReturnOutsideFunction {
		t.Fatalf("expected Kind to survive wrapping, got %v", d.Kind)
	}
}

func TestWrapNonDiagnosticBecomesInvariantViolation(t *testing.T) {
	plain := errors.New("boom")
	wrapped := Wrap(plain, "building seed env")
	if wrapped.Kind != InvariantViolation {
		t.Fatalf("expected a plain error to wrap as InvariantViolation, got %v", wrapped.Kind)
	}
	if !strings.Contains(wrapped.Error(), "boom") {
		t.Fatalf("expected original message preserved, got %q", wrapped.Error())
	}
}

func TestIsComparesByKind(t *testing.T) {
	a := New(Undefined, "x")
	b := New(Undefined, "y")
	c := New(ArityMismatch, "z")

	if !errors.Is(a, b) {
		t.Fatalf("expected diagnostics of the same Kind to match via errors.Is")
	}
	if errors.Is(a, c) {
		t.Fatalf("expected diagnostics of different Kind not to match")
	}
}
