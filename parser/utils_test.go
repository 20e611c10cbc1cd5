// Test Utils contains tools and building blocks that can be generically used for unit tests

package parser

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver/guess"
	"github.com/sensorsdata/sensorsgen/internal/config"
	"golang.org/x/tools/go/packages"
)

// createTestApp creates a test app in the given directory with the given file name and contents
// loading packages is expensive, so this will be skipped in short mode
func createTestApp(t *testing.T, testAppDir, fileName, contents string) ([]*decorator.Package, error) {
	// integration tests are slow, so we skip them in short mode
	if testing.Short() {
		t.Skip("Skipping instrumentation integration tests in short mode")
	}

	err := os.Mkdir(testAppDir, 0755)
	if err != nil {
		return nil, err
	}

	filepath := filepath.Join(testAppDir, fileName)

	f, err := os.Create(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, err = f.WriteString(contents)
	if err != nil {
		return nil, err
	}
	return decorator.Load(&packages.Config{Dir: testAppDir, Mode: packages.LoadSyntax})
}

func cleanTestApp(t *testing.T, appDirectoryName string) {
	err := os.RemoveAll(appDirectoryName)
	if err != nil {
		t.Logf("Failed to cleanup test app directory %s: %v", appDirectoryName, err)
	}
}

func panicRecovery(t *testing.T) {
	err := recover()
	if err != nil {
		t.Fatalf("%s recovered from panic: %+v\n\n%s", t.Name(), err, debug.Stack())
	}
}

func pseudo_uuid() (uuid string) {

	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		fmt.Println("Error: ", err)
		return
	}

	uuid = fmt.Sprintf("%X-%X-%X-%X-%X", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])

	return
}

// testInstrumentationManager writes code into a new package directory and
// returns a manager over it. The caller removes the directory.
func testInstrumentationManager(t *testing.T, code string) (*InstrumentationManager, string) {
	testAppDir := fmt.Sprintf("tmp_%s", pseudo_uuid())
	pkgs, err := createTestApp(t, testAppDir, "app.go", code)
	if err != nil {
		cleanTestApp(t, testAppDir)
		t.Fatal(err)
	}
	if len(pkgs) != 1 || len(pkgs[0].Syntax) != 1 {
		cleanTestApp(t, testAppDir)
		t.Fatalf("expected one package with one file, got %d packages", len(pkgs))
	}

	diffFile := filepath.Join(testAppDir, config.DefaultDiffFileName)
	return NewInstrumentationManager(pkgs, config.Default(), diffFile, testAppDir), testAppDir
}

// restoreTestApp prints the only file of the manager's package.
func restoreTestApp(t *testing.T, manager *InstrumentationManager) string {
	pkg := manager.packages[0].pkg
	restorer := decorator.NewRestorerWithImports(pkg.PkgPath, guess.New())

	buf := bytes.NewBuffer([]byte{})
	err := restorer.Fprint(buf, pkg.Syntax[0])
	if err != nil {
		t.Fatalf("Failed to restore the file: %v", err)
	}

	return buf.String()
}
