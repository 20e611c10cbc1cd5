package comment

import (
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

const (
	InfoHeader  string = "SA INFO"
	WarnHeader  string = "SA WARN"
	ErrorHeader string = "SA ERROR"
)

// Print reports a message about the node to the console without changing the
// node, so that repeated runs leave the source as it is.
func Print(pkg *decorator.Package, node dst.Node, header, message string, additionalInfo ...string) {
	printer.Add(pkg, node, header, message, additionalInfo...)
}

// Report sends a message that is not tied to a node to the console.
func Report(header, message string, additionalInfo ...string) {
	printer.Add(nil, nil, header, message, additionalInfo...)
}
