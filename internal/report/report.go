package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/kdduha/plantdoc/internal/models"
)

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(reportTemplate))

// Document is a generated download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// New renders the report for result as of now. The heading date is in
// now's location, the file name uses the UTC calendar date.
func New(result models.DiagnosisResult, now time.Time) (*Document, error) {
	body, err := Generate(result, now)
	if err != nil {
		return nil, err
	}
	return &Document{
		Filename:    Filename(now),
		ContentType: ContentType,
		Body:        []byte(body),
	}, nil
}

func Generate(result models.DiagnosisResult, now time.Time) (string, error) {
	data := struct {
		Date        string
		Disease     string
		Confidence  int
		Description string
		Symptoms    string
		Remedies    []string
	}{
		Date:        now.Format(dateLayout),
		Disease:     result.DisplayName(),
		Confidence:  result.ConfidencePercent(),
		Description: result.Description,
		Symptoms:    result.Symptoms,
		Remedies:    result.Remedies,
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

func Filename(now time.Time) string {
	return filenamePrefix + now.UTC().Format(time.DateOnly) + ".txt"
}
