package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bryan-cox/weeklyreport/internal/model"
)

// DefaultHTMLPath returns output_dir/status_report_YYYYMMDD.html for the report's week.
func DefaultHTMLPath(outputDir string, r *model.Report) string {
	return filepath.Join(outputDir, fmt.Sprintf("status_report_%s.html", r.WeekStart.Format("20060102")))
}

// DefaultSlidesDir returns output_dir/slides_YYYYMMDD for the report's week.
func DefaultSlidesDir(outputDir string, r *model.Report) string {
	return filepath.Join(outputDir, fmt.Sprintf("slides_%s", r.WeekStart.Format("20060102")))
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SaveHTML renders the report to path and returns the absolute path written.
func SaveHTML(r *model.Report, path string) (string, error) {
	return Page{}.Save(r, path)
}

// Save renders the report to path and returns the absolute path written.
func (p Page) Save(r *model.Report, path string) (string, error) {
	if err := WriteFile(path, p.HTML(r)); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

// SaveSlides writes every slide of the deck into dir and returns the paths written.
func (d Deck) SaveSlides(r *model.Report, dir string) ([]string, error) {
	slides := d.Slides(r)
	paths := make([]string, 0, len(slides))
	for _, s := range slides {
		path := filepath.Join(dir, s.Name)
		if err := WriteFile(path, s.Content); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
