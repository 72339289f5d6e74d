package report

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// RenderPDF converts markdown to PDF using pandoc. The markdown is staged in
// a temporary directory that is removed when rendering finishes.
func RenderPDF(ctx context.Context, pandocPath string, markdown string) ([]byte, error) {
	if pandocPath == "" {
		pandocPath = "pandoc"
	}
	if err := checkPandocExists(ctx, pandocPath); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "pmfstudio-report-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	mdPath := filepath.Join(dir, "report.md")
	pdfPath := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(mdPath, []byte(markdown), 0600); err != nil {
		return nil, fmt.Errorf("failed to write markdown file: %w", err)
	}

	cmd := exec.CommandContext(
		ctx,
		pandocPath,
		"-f", "markdown",
		"-t", "pdf",
		"-o", pdfPath,
		"--number-sections=false",
		mdPath,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pandoc failed: %s: %w", string(output), err)
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered PDF: %w", err)
	}
	return pdf, nil
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context, pandocPath string) error {
	if err := exec.CommandContext(ctx, pandocPath, "--version").Run(); err != nil {
		return fmt.Errorf("pandoc not found at %q (install pandoc to generate PDFs): %w", pandocPath, err)
	}
	return nil
}
