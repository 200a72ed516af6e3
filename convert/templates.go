package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"onepaper/config"
	"onepaper/slide"
	"onepaper/state"
)

// dateLayout is used for .Date, it matches file names people already have
// for produced slides.
const dateLayout = "20060102"

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Department string
	Date       string
	SourceFile string
	Theme      string
}

// buildValues prepares template values. All documents produced by a single
// run share the same date.
func buildValues(doc *slide.Document, title, src string, name config.TemplateFieldName, env *state.LocalEnv) Values {
	return Values{
		Context:    string(name),
		Title:      title,
		Department: strings.TrimSpace(doc.Department),
		Date:       env.StartTime().Format(dateLayout),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Theme:      env.Cfg.Document.ThemeMode.String(),
	}
}

func expandTemplate(values Values, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
