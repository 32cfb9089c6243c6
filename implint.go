// Package implint checks capability assertions embedded in Go source.
//
// An assertion pairs a type with a boolean expression over interfaces:
//
//	//implint:assert *bytes.Buffer: io.Writer & fmt.Stringer
//
// Assertions are resolved entirely from type information, before the
// program under analysis ever runs. See the expr package for the grammar
// and the satisfy package for resolution semantics.
package implint

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/implint/implint/expr"
	"github.com/implint/implint/internal"
	"github.com/implint/implint/internal/satisfy"
	tt "github.com/implint/implint/internal/types"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Engine loads packages and checks their assertion directives.
type Engine struct {
	engine       *internal.Engine
	logger       *zap.Logger
	ignorePaths  []string
	showProgress bool
}

// New creates an Engine. An empty configPath uses the defaults; a named
// file must exist and parse.
func New(configPath string, logger *zap.Logger) (*Engine, error) {
	config := DefaultConfig()
	if configPath != "" {
		var err error
		config, err = ParseConfigurationFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", configPath, err)
		}
	}

	return &Engine{
		engine:      internal.NewEngine(config.Rules),
		logger:      logger,
		ignorePaths: config.IgnorePaths,
	}, nil
}

// IgnoreRule disables reporting for the named rule.
func (e *Engine) IgnoreRule(rule string) {
	e.engine.IgnoreRule(rule)
}

// IgnorePath excludes files under the given path prefix.
func (e *Engine) IgnorePath(path string) {
	e.ignorePaths = append(e.ignorePaths, filepath.Clean(path))
}

// ShowProgress enables the progress bar during Run.
func (e *Engine) ShowProgress(show bool) {
	e.showProgress = show
}

// Run loads the packages matched by the patterns and evaluates every
// assertion directive in them. Issues come back sorted by position.
func (e *Engine) Run(ctx context.Context, patterns ...string) ([]tt.Issue, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Fset:    fset,
		Tests:   true,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if err := loadErrors(pkgs); err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if e.showProgress {
		bar = progressbar.NewOptions(len(pkgs),
			progressbar.OptionSetDescription("checking"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)
	}

	var (
		mu        sync.Mutex
		allIssues []tt.Issue
	)
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for _, pkg := range pkgs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(pkg *packages.Package) {
			defer wg.Done()
			defer func() { <-sem }()

			issues := e.checkPackage(fset, pkg)
			mu.Lock()
			allIssues = append(allIssues, issues...)
			mu.Unlock()
			if bar != nil {
				bar.Add(1)
			}
		}(pkg)
	}
	wg.Wait()

	sort.Slice(allIssues, func(i, j int) bool {
		a, b := allIssues[i], allIssues[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		return a.Start.Column < b.Start.Column
	})
	return allIssues, nil
}

func (e *Engine) checkPackage(fset *token.FileSet, pkg *packages.Package) []tt.Issue {
	var issues []tt.Issue
	for _, file := range pkg.Syntax {
		filename := fset.Position(file.Pos()).Filename
		if e.isIgnoredPath(filename) {
			continue
		}
		fileIssues := e.engine.CheckFile(fset, file, pkg.Types)
		for i := range fileIssues {
			fileIssues[i].Filename = filename
		}
		issues = append(issues, fileIssues...)
	}
	if e.logger != nil && len(issues) > 0 {
		e.logger.Debug("assertions failed",
			zap.String("package", pkg.PkgPath),
			zap.Int("issues", len(issues)))
	}
	return issues
}

func (e *Engine) isIgnoredPath(filename string) bool {
	clean := filepath.Clean(filename)
	for _, prefix := range e.ignorePaths {
		if clean == prefix || strings.HasPrefix(clean, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Eval evaluates a single "TYPE: EXPR" assertion at the package scope of
// the one package matched by pattern. This is the ad-hoc query mode of the
// CLI.
func (e *Engine) Eval(ctx context.Context, pattern, src string) (*satisfy.Result, error) {
	parsed, err := expr.ParseAssertion(src)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Fset:    fset,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading package %s: %w", pattern, err)
	}
	if err := loadErrors(pkgs); err != nil {
		return nil, err
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, need exactly one", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Syntax) == 0 {
		return nil, fmt.Errorf("package %s has no Go files", pkg.PkgPath)
	}

	// Package-level scope: any position inside the first file works.
	pos := pkg.Syntax[0].End() - 1
	checker := satisfy.NewChecker(fset, pkg.Types, pos)
	return checker.Eval(parsed.TypeExpr, parsed.Expr)
}

func loadErrors(pkgs []*packages.Package) error {
	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, perr := range pkg.Errors {
			errs = append(errs, errors.New(perr.Error()))
		}
	})
	return errors.Join(errs...)
}
