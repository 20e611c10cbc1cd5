package parser

import (
	"bytes"
	"fmt"
	"go/types"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver"
	"github.com/dave/dst/decorator/resolver/gopackages"
	"github.com/dave/dst/decorator/resolver/guess"
	"github.com/pkg/errors"
	"github.com/sensorsdata/sensorsgen/internal/codegen"
	"github.com/sensorsdata/sensorsgen/internal/comment"
	"github.com/sensorsdata/sensorsgen/internal/config"
	"github.com/sensorsdata/sensorsgen/internal/util"
	"github.com/sensorsdata/sensorsgen/parser/tags"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
)

// InstrumentationManager finds the tagged functions of every loaded package
// and splices the generated tracking code into them.
type InstrumentationManager struct {
	userAppPath string // path to the user's application as provided by the user
	diffFile    string
	config      *config.Config
	sdk         codegen.SDK
	packages    []*PackageState
	debug       bool
}

// PackageState tracks a package being instrumented.
type PackageState struct {
	pkg      *decorator.Package
	modified map[*dst.File]bool // files that received generated code
}

// Result is the outcome of one instrumentation run.
type Result struct {
	// Processed is always true once Process returns; failures are reported
	// through Err.
	Processed bool
	// Instrumented counts the functions that received generated code.
	Instrumented int
	// Skipped counts tagged functions that were already instrumented.
	Skipped int
	Err     error
}

// pendingEdit is a guard waiting to be prepended to a function body.
type pendingEdit struct {
	state *PackageState
	file  *dst.File
	fn    *taggedFunction
	guard dst.Stmt
}

// NewInstrumentationManager initializes an InstrumentationManager for the given packages.
// A nil config uses the defaults.
func NewInstrumentationManager(pkgs []*decorator.Package, cfg *config.Config, diffFile, userAppPath string) *InstrumentationManager {
	comment.EnableConsolePrinter(userAppPath)

	if cfg == nil {
		cfg = config.Default()
	}

	manager := &InstrumentationManager{
		userAppPath: userAppPath,
		diffFile:    diffFile,
		config:      cfg,
		sdk: codegen.SDK{
			ImportPath:     cfg.SDK.ImportPath,
			SharedInstance: cfg.SDK.SharedInstance,
			MethodOf:       cfg.SDK.MethodOf,
			StartWithTag:   cfg.SDK.StartWithTag,
		},
	}

	for _, pkg := range pkgs {
		manager.packages = append(manager.packages, &PackageState{
			pkg:      pkg,
			modified: map[*dst.File]bool{},
		})
	}

	return manager
}

// SetDebug makes the manager log the structure of every generated block.
func (m *InstrumentationManager) SetDebug(debug bool) {
	m.debug = debug
}

// Process runs one instrumentation round over every loaded package. Either
// every tagged function is instrumented, or, if any directive fails, none is.
func (m *InstrumentationManager) Process() Result {
	result := Result{Processed: true}

	edits, skipped, err := m.synthesize()
	result.Skipped = skipped
	if err != nil {
		result.Err = err
		comment.Report(comment.ErrorHeader, "instrumentation failed, no changes were made", causes(err)...)
		return result
	}

	for _, edit := range edits {
		codegen.PrependStatementToFunctionDecl(edit.fn.decl, edit.guard)
		edit.state.modified[edit.file] = true
		comment.Print(edit.fn.pkg, edit.fn.decl, comment.InfoHeader, fmt.Sprintf("instrumented %s", edit.fn.qualifiedName()))
		if m.debug {
			log.Printf("generated code for %s:\n%s", edit.fn.qualifiedName(), util.DebugPrint(edit.guard))
		}
	}
	result.Instrumented = len(edits)
	return result
}

// causes lists the messages of an error and each error it wraps.
func causes(err error) []string {
	var msgs []string
	for err != nil {
		if msg := err.Error(); len(msgs) == 0 || msgs[len(msgs)-1] != msg {
			msgs = append(msgs, msg)
		}
		next := errors.Unwrap(err)
		if next == nil {
			if c, ok := err.(interface{ Cause() error }); ok && c.Cause() != err {
				next = c.Cause()
			}
		}
		err = next
	}
	return msgs
}

// synthesize builds the guarded block of every tagged function without
// touching the tree.
func (m *InstrumentationManager) synthesize() ([]pendingEdit, int, error) {
	functions, suppliers, err := m.collect()
	if err != nil {
		return nil, 0, err
	}

	initCount := 0
	for _, entry := range functions {
		if entry.fn.directives.Has(tags.Init) {
			initCount++
		}
	}
	switch {
	case initCount > 1:
		return nil, 0, errors.WithStack(&TooManyElementsError{Directive: tags.Init.String(), Count: initCount})
	case initCount == 0:
		comment.Report(comment.WarnHeader, "no function carries the init directive, the analytics SDK will never be started")
	}

	supplierFuncs := make([]*types.Func, 0, len(suppliers))
	for _, s := range suppliers {
		supplierFuncs = append(supplierFuncs, s.fn)
	}
	identity, err := ResolveLoginIdentity(supplierFuncs)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	if identity == nil {
		comment.Report(comment.WarnHeader, "no function carries the loginid directive, every distinct id must be given explicitly")
	}

	s := &synthesizer{
		sdk:      m.sdk,
		identity: identity,
	}

	var edits []pendingEdit
	skipped := 0
	for _, entry := range functions {
		fn := entry.fn
		body := fn.decl.Body
		if len(body.List) > 0 && codegen.IsGuard(body.List[0]) {
			comment.Print(fn.pkg, fn.decl, comment.WarnHeader, fmt.Sprintf("%s is already instrumented, skipping it", fn.qualifiedName()))
			skipped++
			continue
		}

		var stmts []dst.Stmt
		for _, tag := range fn.directives.Tags {
			generated, err := builders[tag.Kind](s, fn, tag)
			if err != nil {
				var missing *MissingIdentityError
				if errors.As(err, &missing) {
					return nil, 0, errors.WithStack(err)
				}
				return nil, 0, &DirectiveError{
					Position: fn.position(),
					Function: fn.qualifiedName(),
					Err:      errors.Wrapf(err, "%s directive", tag.Kind),
				}
			}
			stmts = append(stmts, generated...)
		}

		if len(stmts) == 0 {
			comment.Print(fn.pkg, fn.decl, comment.WarnHeader, fmt.Sprintf("no code was generated for %s, skipping it", fn.qualifiedName()))
			continue
		}

		guard := codegen.Guard(m.config.SDK.LogLabel, stmts)
		if err := fn.checkScope(entry.file, guard); err != nil {
			return nil, 0, fn.directiveError(err)
		}

		edits = append(edits, pendingEdit{
			state: entry.state,
			file:  entry.file,
			fn:    fn,
			guard: guard,
		})
	}

	return edits, skipped, nil
}

// located is a tagged function and where it was found.
type located struct {
	state *PackageState
	file  *dst.File
	fn    *taggedFunction
}

// collect reads the directives of every function declaration. Functions
// that only supply the login id are returned as suppliers; functions with
// tracking directives are returned in source order.
func (m *InstrumentationManager) collect() ([]located, []*taggedFunction, error) {
	var functions []located
	var suppliers []*taggedFunction
	seen := map[*dst.FuncDecl]bool{}
	marker := m.config.DirectiveMarker()

	for _, state := range m.packages {
		pkg := state.pkg
		for _, file := range pkg.Syntax {
			if skipFile(pkg.Decorator.Filenames[file]) {
				continue
			}

			for _, decl := range file.Decls {
				decl, ok := decl.(*dst.FuncDecl)
				if !ok || seen[decl] {
					continue
				}
				seen[decl] = true

				fn, err := m.readFunction(pkg, decl, marker)
				if err != nil {
					return nil, nil, err
				}
				if fn == nil {
					continue
				}

				if fn.directives.LoginID {
					suppliers = append(suppliers, fn)
				}
				if len(fn.directives.Tags) > 0 {
					functions = append(functions, located{state: state, file: file, fn: fn})
				}
			}
		}
	}

	return functions, suppliers, nil
}

// skipFile reports whether a file is never instrumented.
func skipFile(filename string) bool {
	return strings.HasSuffix(filename, "_test.go") || strings.HasSuffix(filename, ".pb.go")
}

// readFunction reads the directives of decl. It returns nil if decl has none.
func (m *InstrumentationManager) readFunction(pkg *decorator.Package, decl *dst.FuncDecl, marker string) (*taggedFunction, error) {
	fn := &taggedFunction{
		decl: decl,
		pkg:  pkg,
		fn:   util.FuncObject(decl, pkg),
	}

	directives, err := tags.Parse(marker, decl.Decs.Start)
	if err != nil {
		return nil, fn.directiveError(err)
	}
	if directives.Empty() {
		return nil, nil
	}
	fn.directives = directives

	if fn.fn == nil {
		return nil, fn.directiveError(errors.New("no type information is available for this function"))
	}
	if len(directives.Tags) > 0 && decl.Body == nil {
		return nil, fn.directiveError(errors.New("functions without a body can not be instrumented"))
	}

	if err := fn.readParams(); err != nil {
		return nil, fn.directiveError(err)
	}
	return fn, nil
}

func (f *taggedFunction) directiveError(err error) error {
	return &DirectiveError{
		Position: f.position(),
		Function: f.qualifiedName(),
		Err:      err,
	}
}

// readParams records the parameters of the function. Unnamed and blank
// parameters can not be reported as properties and are left out with a
// warning when a directive asks for the parameters.
func (f *taggedFunction) readParams() error {
	sig := f.fn.Type().(*types.Signature)
	includeParams := false
	for _, tag := range f.directives.Tags {
		includeParams = includeParams || tag.IncludeParams
	}

	known := map[string]bool{}
	for i := 0; i < sig.Params().Len(); i++ {
		v := sig.Params().At(i)
		f.paramTypes = append(f.paramTypes, v.Type())

		name := v.Name()
		if name == "" || name == "_" {
			if includeParams {
				comment.Print(f.pkg, f.decl, comment.WarnHeader, fmt.Sprintf("parameter %d of %s has no name and is not reported", i, f.qualifiedName()))
			}
			continue
		}
		known[name] = true

		key := f.directives.ParamKeys[name]
		if isBlank(key) {
			key = name
		}
		f.params = append(f.params, param{name: name, key: key, typ: v.Type()})
	}

	for name := range f.directives.ParamKeys {
		if !known[name] {
			return errors.Errorf("property directive names unknown parameter %q", name)
		}
	}
	return nil
}

// checkScope fails when a receiver, parameter or named result of the function
// hides a package that the generated block refers to, since the block is
// spliced into the scope of the function.
func (f *taggedFunction) checkScope(file *dst.File, guard dst.Node) error {
	sig := f.fn.Type().(*types.Signature)
	declared := map[string]bool{}
	if recv := sig.Recv(); recv != nil {
		declared[recv.Name()] = true
	}
	for _, tuple := range []*types.Tuple{sig.Params(), sig.Results()} {
		for i := 0; i < tuple.Len(); i++ {
			declared[tuple.At(i).Name()] = true
		}
	}

	for _, path := range codegen.ImportPaths(guard) {
		if path == f.pkg.PkgPath {
			continue
		}
		name := importName(file, path)
		if name != "" && declared[name] {
			return errors.Errorf("parameter %q hides package %q used by the generated code, rename the parameter", name, path)
		}
	}
	return nil
}

// importName is the name the restorer gives path in file: the alias of an
// existing import, or the guessed package name.
func importName(file *dst.File, path string) string {
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil || p != path || spec.Name == nil {
			continue
		}
		if spec.Name.Name != "_" && spec.Name.Name != "." {
			return spec.Name.Name
		}
	}
	name, err := guess.New().ResolvePackage(path)
	if err != nil {
		return ""
	}
	return name
}

// WriteDiff writes the changes made to each file as a patch to the diff file.
func (m *InstrumentationManager) WriteDiff() error {
	f, err := os.OpenFile(m.diffFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to open diff file")
	}
	defer f.Close()

	absAppPath, err := filepath.Abs(m.userAppPath)
	if err != nil {
		return err
	}

	err = m.eachModifiedFile(func(path string, original, modified []byte) error {
		// what this file will be named in the diff file
		diffFileName, err := filepath.Rel(absAppPath, path)
		if err != nil {
			return err
		}

		patch := godiffpatch.GeneratePatch(diffFileName, string(original), string(modified))
		_, err = f.WriteString(patch)
		return err
	})
	if err != nil {
		return err
	}

	log.Printf("changes written to %s", m.diffFile)
	return nil
}

// WriteFiles rewrites every modified file in place.
func (m *InstrumentationManager) WriteFiles() error {
	return m.eachModifiedFile(func(path string, _, modified []byte) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, modified, info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		log.Printf("instrumented %s", path)
		return nil
	})
}

// eachModifiedFile restores every file that received generated code and
// hands its original and new contents to write.
func (m *InstrumentationManager) eachModifiedFile(write func(path string, original, modified []byte) error) error {
	for _, state := range m.packages {
		if len(state.modified) == 0 {
			continue
		}
		r := decorator.NewRestorerWithImports(state.pkg.PkgPath, fallbackResolver{
			primary:  gopackages.New(state.pkg.Dir),
			fallback: guess.New(),
		})

		for _, file := range state.pkg.Syntax {
			if !state.modified[file] {
				continue
			}

			path := state.pkg.Decorator.Filenames[file]
			original, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			modified := bytes.NewBuffer([]byte{})
			if err := r.Fprint(modified, file); err != nil {
				return errors.Wrapf(err, "failed to restore %s", path)
			}

			if err := write(path, original, modified.Bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}

// fallbackResolver resolves package names through the application module and
// guesses the names of packages it can not load, such as the analytics SDK
// before the application depends on it.
type fallbackResolver struct {
	primary  resolver.RestorerResolver
	fallback resolver.RestorerResolver
}

func (r fallbackResolver) ResolvePackage(importPath string) (string, error) {
	if name, err := r.primary.ResolvePackage(importPath); err == nil {
		return name, nil
	}
	return r.fallback.ResolvePackage(importPath)
}

// CreateDiffFile truncates the diff file so that a run starts from an empty patch.
func (m *InstrumentationManager) CreateDiffFile() error {
	f, err := os.Create(m.diffFile)
	if err != nil {
		return err
	}
	return f.Close()
}
