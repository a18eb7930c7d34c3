package diagram

import (
	"fmt"
	"os"
	"os/exec"
)

// Runner abstracts the dot binary invocation so tests can stub it out.
type Runner interface {
	Run(dotFile, outFile, format string) error
}

// ExecRunner invokes the real graphviz dot binary.
type ExecRunner struct{}

// Run renders dotFile into outFile using the requested format.
func (ExecRunner) Run(dotFile, outFile, format string) error {
	cmd := exec.Command("dot", "-T"+format, "-o", outFile, dotFile) // #nosec G204
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run dot (is graphviz installed?): %w", err)
	}
	return nil
}

// Renderer writes a graph to disk as DOT and optionally renders an image.
type Renderer struct {
	runner Runner
}

// NewRenderer creates a renderer. A nil runner defaults to ExecRunner.
func NewRenderer(runner Runner) *Renderer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Renderer{runner: runner}
}

// Render writes <base>.gv and, if format is non-empty, <base>.<format> via
// the dot binary. It returns the paths of the files written.
func (r *Renderer) Render(g *Graph, base, format string) ([]string, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if base == "" {
		base = DefaultBase
	}

	dotFile := base + ".gv"
	f, err := os.Create(dotFile) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("create dot file: %w", err)
	}
	if err := g.WriteDOT(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	written := []string{dotFile}
	if format != "" {
		outFile := base + "." + format
		if err := r.runner.Run(dotFile, outFile, format); err != nil {
			return written, err
		}
		written = append(written, outFile)
	}
	return written, nil
}
