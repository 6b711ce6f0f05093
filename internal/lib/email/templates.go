package email

import (
	"bytes"
	"html/template"
	"io/fs"
	"os"

	"github.com/deppfellow/opsboard/internal/table"
	"github.com/pkg/errors"
)

// TemplateDir is where the HTML email templates live, relative to the
// working directory of the binary.
const TemplateDir = "templates/emails"

// Template names a file <name>.html under TemplateDir.
type Template string

const (
	TemplateStatsDigest Template = "stats_digest"
)

// Templates lists every template the preview endpoint may render.
var Templates = []Template{TemplateStatsDigest}

func (t Template) Valid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

var funcs = template.FuncMap{
	"pct": func(v float64) string { return table.Display(v, table.Percentage) },
	"num": func(v float64) string { return table.Display(v, table.Number) },
}

func render(fsys fs.FS, name Template, data any) (string, error) {
	file := string(name) + ".html"

	tmpl, err := template.New(file).Funcs(funcs).ParseFS(fsys, file)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

func defaultTemplates() fs.FS {
	return os.DirFS(TemplateDir)
}
