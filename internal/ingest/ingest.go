// Package ingest models the bridge to the external static-analysis
// front-end that turns C source into a queryable program-graph database
// (§6, "External ingest interface (consumed)"). The bridge itself is a
// black box: a one-shot subprocess invocation identified by a generated
// database id, mirroring the original joern bridge's
// `run(rikai_path, database_id, source_path, timeout=...)` contract.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// Ingester is a one-shot callable turning a source file into a database id
// (§6). It plays the role the teacher's core/job.Job plays for a
// long-running service, scaled down to a single run-to-completion call.
type Ingester interface {
	// Ingest processes sourcePath and returns the id of the database it
	// produced. It fails with *IngestFailed if the underlying tool exits
	// non-zero.
	Ingest(ctx context.Context, sourcePath string, timeout time.Duration) (databaseID string, err error)
}

// IngestFailed reports that the external ingest tool exited non-zero; its
// stderr is surfaced verbatim (§7.5).
type IngestFailed struct {
	ExitCode int
	Stderr   string
}

func (e *IngestFailed) Error() string {
	return fmt.Sprintf("ingest failed with exit code %d: %s", e.ExitCode, e.Stderr)
}

// ProcessIngester shells out to an external rikai-interface executable,
// passing it a freshly generated database id and the source path.
type ProcessIngester struct {
	// ExecutablePath is the path to the ingest tool.
	ExecutablePath string
}

// NewProcessIngester builds a ProcessIngester invoking the executable at
// executablePath.
func NewProcessIngester(executablePath string) *ProcessIngester {
	return &ProcessIngester{ExecutablePath: executablePath}
}

func (p *ProcessIngester) Ingest(ctx context.Context, sourcePath string, timeout time.Duration) (string, error) {
	databaseID := uuid.NewString()

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, p.ExecutablePath, databaseID, sourcePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return "", fmt.Errorf("ingest: starting %s: %w", p.ExecutablePath, err)
		}
		return "", &IngestFailed{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
	}

	return databaseID, nil
}
