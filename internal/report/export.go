package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lifewheel/internal/chart"
	"lifewheel/internal/wheel"
)

// Exporter writes summary documents and chart images into Dir.
type Exporter struct {
	Dir    string
	Format Format
	// Chart is the image format for the comparison chart; empty skips it.
	Chart chart.ImageFormat
	Image chart.Image
}

type Result struct {
	ID           string
	DocumentPath string
	ChartPath    string
}

// Paths lists every file the export wrote.
func (r Result) Paths() []string {
	paths := []string{r.DocumentPath}
	if r.ChartPath != "" {
		paths = append(paths, r.ChartPath)
	}
	return paths
}

// Export writes the report for s. Each file is written atomically; a failed
// chart leaves the document in place and returns the error.
func (e Exporter) Export(ctx context.Context, s wheel.State, policy wheel.MicroActionPolicy) (Result, error) {
	if strings.TrimSpace(e.Dir) == "" {
		return Result{}, fmt.Errorf("export dir is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	format := e.Format
	if format == "" {
		format = FormatMarkdown
	}
	doc := NewDocument(s, policy)
	data, err := Encode(doc, format)
	if err != nil {
		return Result{}, err
	}
	base := fmt.Sprintf("lifewheel-%s-%s", doc.CreatedAt.Local().Format("20060102-150405"), doc.ShortID())
	result := Result{ID: doc.ID, DocumentPath: filepath.Join(e.Dir, base+format.Ext())}
	if err := writeFileAtomic(result.DocumentPath, data); err != nil {
		return Result{}, fmt.Errorf("write report: %w", err)
	}
	if e.Chart == "" {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	image := e.Image
	if image.Width == 0 {
		image = chart.NewImage()
	}
	var buf bytes.Buffer
	if err := image.Render(&buf, chart.ForState(s, wheel.ChartComparison), e.Chart); err != nil {
		return result, fmt.Errorf("render chart: %w", err)
	}
	chartPath := filepath.Join(e.Dir, base+e.Chart.Ext())
	if err := writeFileAtomic(chartPath, buf.Bytes()); err != nil {
		return result, fmt.Errorf("write chart: %w", err)
	}
	result.ChartPath = chartPath
	return result, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, ".tmp-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if err := os.Chmod(file.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(file.Name(), path)
}
