package comment

import (
	"testing"

	"github.com/dave/dst"
)

func TestReport(t *testing.T) {
	EnableConsolePrinter("app")
	defer func() { printer = nil }()

	Report(WarnHeader, "no init function found")
	msgs := Messages()
	if len(msgs) != 1 || msgs[0] != "SA WARN: no init function found" {
		t.Errorf("unexpected messages: %q", msgs)
	}

	WriteAll()
	if len(Messages()) != 0 {
		t.Errorf("expected messages to be flushed, got %q", Messages())
	}
}

func TestPrintLeavesNodeUntouched(t *testing.T) {
	EnableConsolePrinter("app")
	defer func() { printer = nil }()

	node := &dst.Ident{Name: "hi"}
	Print(nil, node, InfoHeader, "instrumented")

	if len(node.Decorations().Start) != 0 {
		t.Errorf("expected no comments on the node, got %q", node.Decorations().Start)
	}
	msgs := Messages()
	if len(msgs) != 1 || msgs[0] != "SA INFO: instrumented" {
		t.Errorf("unexpected messages: %q", msgs)
	}
}
