// Package ruleset loads a directory of rule files into parsed rule.Rule
// values (§6, "Rule directory traversal"). Parsing each file is pure and
// independent, so the walk fans files out across a bounded goroutine pool
// (github.com/panjf2000/ants/v2, the same pool library the teacher's
// pkg/sync package adapts) while a per-rule policy decides whether a
// malformed file aborts the whole load or is merely skipped and reported
// (§7: "the rule directory walker may either fail-fast or skip-and-report
// depending on driver policy").
package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/rule"
)

// LoadError pairs a failed rule file's path with the error loading it
// produced.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Policy controls how Load reacts to a single file failing to parse.
type Policy int

const (
	// SkipAndReport is the default: a malformed file is recorded as a
	// LoadError and excluded from the result; loading continues.
	SkipAndReport Policy = iota
	// FailFast aborts the entire load on the first malformed file.
	FailFast
)

// LoadOption configures Load.
type LoadOption func(*options)

type options struct {
	policy   Policy
	poolSize int
}

// WithPolicy overrides the default SkipAndReport policy.
func WithPolicy(p Policy) LoadOption {
	return func(o *options) { o.policy = p }
}

// WithPoolSize overrides the default goroutine pool size used to parse
// files concurrently.
func WithPoolSize(n int) LoadOption {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// Result is the outcome of loading a rule directory: the rules that parsed
// successfully, in no particular order, plus any per-file errors
// encountered under SkipAndReport policy.
type Result struct {
	Rules  []rule.Rule
	Errors []*LoadError
}

// Load recursively enumerates .yaml/.yml files under dir and parses each
// into a rule.Rule.
func Load(dir string, opts ...LoadOption) (Result, error) {
	o := options{policy: SkipAndReport, poolSize: 8}
	for _, opt := range opts {
		opt(&o)
	}

	paths, err := collectPaths(dir)
	if err != nil {
		return Result{}, err
	}

	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		return Result{}, fmt.Errorf("ruleset: building worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		result  Result
		aborted error
	)

	for _, path := range paths {
		path := path
		wg.Add(1)
		task := func() {
			defer wg.Done()

			mu.Lock()
			shouldSkip := aborted != nil
			mu.Unlock()
			if shouldSkip {
				return
			}

			contents, readErr := os.ReadFile(path)
			if readErr != nil {
				recordFailure(&mu, &result, &aborted, o.policy, path, readErr)
				return
			}
			r, parseErr := rule.Parse(path, contents)
			if parseErr != nil {
				recordFailure(&mu, &result, &aborted, o.policy, path, parseErr)
				return
			}

			mu.Lock()
			result.Rules = append(result.Rules, r)
			mu.Unlock()
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			return Result{}, fmt.Errorf("ruleset: submitting %s: %w", path, err)
		}
	}

	wg.Wait()

	if aborted != nil {
		return Result{}, aborted
	}
	return result, nil
}

func recordFailure(mu *sync.Mutex, result *Result, aborted *error, policy Policy, path string, err error) {
	loadErr := &LoadError{Path: path, Err: err}
	mu.Lock()
	defer mu.Unlock()
	if policy == FailFast {
		if *aborted == nil {
			*aborted = loadErr
		}
		return
	}
	result.Errors = append(result.Errors, loadErr)
}

func collectPaths(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
