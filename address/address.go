// Package address renders postal addresses into display lines using
// per-target templates.
package address

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/wudi/invoicekit/model"
)

// LineSeparator separates the display lines produced by a template.
const LineSeparator = "|"

// Targets known to the default formatter.
const (
	TargetPDF  = "pdf"
	TargetText = "text"
)

// DefaultPDFTemplate prints one address element per line.
const DefaultPDFTemplate = `{{if .Company}}{{.Company}}|{{end}}` +
	`{{.Name}}|` +
	`{{range .Street}}{{.}}|{{end}}` +
	`{{.City}}, {{if .Region}}{{.Region}}, {{end}}{{.Postcode}}|` +
	`{{.Country}}|` +
	`{{if .Telephone}}T: {{.Telephone}}{{end}}|` +
	`{{if .Fax}}F: {{.Fax}}{{end}}|` +
	`{{if .VATID}}VAT: {{.VATID}}{{end}}`

// DefaultTextTemplate prints the address on as few lines as practical.
const DefaultTextTemplate = `{{.Name}}|{{if .Company}}{{.Company}}|{{end}}` +
	`{{join .Street ", "}}|{{.City}} {{.Postcode}}|{{.Country}}`

// ErrUnknownTarget is returned when no template is registered for a target.
var ErrUnknownTarget = errors.New("address: unknown target")

// Formatter renders addresses through text templates. Template output is
// split on LineSeparator; blank lines are dropped.
type Formatter struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// New returns a Formatter with the default pdf and text templates.
func New() *Formatter {
	f := &Formatter{templates: make(map[string]*template.Template)}
	f.templates[TargetPDF] = template.Must(parse(TargetPDF, DefaultPDFTemplate))
	f.templates[TargetText] = template.Must(parse(TargetText, DefaultTextTemplate))
	return f
}

func parse(name, text string) (*template.Template, error) {
	return template.New(name).
		Funcs(template.FuncMap{"join": strings.Join, "upper": strings.ToUpper}).
		Parse(text)
}

// SetTemplate replaces the template of target.
func (f *Formatter) SetTemplate(target, text string) error {
	t, err := parse(target, text)
	if err != nil {
		return fmt.Errorf("address: parse %s template: %w", target, err)
	}
	f.mu.Lock()
	f.templates[target] = t
	f.mu.Unlock()
	return nil
}

// Render formats addr for target.
func (f *Formatter) Render(addr *model.Address, target string) ([]string, error) {
	if addr == nil {
		return nil, nil
	}
	f.mu.RLock()
	t, ok := f.templates[target]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, addr); err != nil {
		return nil, fmt.Errorf("address: render %s: %w", target, err)
	}
	return Lines(sb.String()), nil
}

// Format is Render with template failures reported as no lines.
func (f *Formatter) Format(addr *model.Address, target string) []string {
	lines, err := f.Render(addr, target)
	if err != nil {
		return nil
	}
	return lines
}

// Lines splits rendered template output into trimmed, non-empty lines.
func Lines(rendered string) []string {
	var out []string
	for _, l := range strings.Split(rendered, LineSeparator) {
		l = strings.TrimSpace(l)
		if l == "" || l == "," {
			continue
		}
		out = append(out, l)
	}
	return out
}
