// Package report presents session state on a terminal or to scripts. Text
// output is rendered from pongo2 templates; JSON and YAML output carry the
// raw values so they can be piped into other tools.
package report

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-actorrunner/pkg/coerce"
	"github.com/goliatone/go-actorrunner/pkg/session"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in report templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Format selects how a report is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("report: unknown format")

// Template names.
const (
	TemplateSchema = "schema"
	TemplateResult = "result"
)

// ParseFormat resolves a format name. The empty string selects text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithEngine overrides the template engine used for text output.
func WithEngine(engine *Engine) Option {
	return func(r *Reporter) {
		if engine != nil {
			r.templates = engine
		}
	}
}

// WithCoercion overrides the engine used to turn values into display text.
func WithCoercion(engine *coerce.Engine) Option {
	return func(r *Reporter) {
		if engine != nil {
			r.coercion = engine
		}
	}
}

// Reporter writes schema and result reports in one format.
type Reporter struct {
	format    Format
	templates *Engine
	coercion  *coerce.Engine
}

// New creates a Reporter for format.
func New(format Format, options ...Option) (*Reporter, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	r := &Reporter{format: format, coercion: coerce.New()}
	if r.format == "" {
		r.format = FormatText
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.templates == nil && r.format == FormatText {
		engine, err := NewEngine()
		if err != nil {
			return nil, err
		}
		r.templates = engine
	}
	return r, nil
}

// Format returns the output format.
func (r *Reporter) Format() Format {
	return r.format
}

// Schema writes the loaded form. Structured formats emit the current input
// object, which can be edited and fed back with --input-file.
func (r *Reporter) Schema(w io.Writer, snap session.Snapshot) error {
	if r.format != FormatText {
		return r.writeValue(w, snap.Input)
	}

	fields := make([]map[string]any, 0, len(snap.Fields))
	for _, f := range snap.Fields {
		fields = append(fields, map[string]any{
			"key":       f.Key,
			"type":      f.TypeLabel,
			"display":   f.DisplayText,
			"multiline": f.Multiline,
			"url":       f.URLField,
		})
	}
	_, err := r.templates.RenderTemplate(TemplateSchema, map[string]any{
		"title":       snap.Title,
		"description": snap.Description,
		"phase":       string(snap.Phase),
		"empty":       len(fields) == 0,
		"fields":      fields,
	}, w)
	return err
}

// Result writes the outcome of the last run. Structured formats emit the
// complete response payload, or an error object when no payload exists.
func (r *Reporter) Result(w io.Writer, snap session.Snapshot) error {
	if r.format != FormatText {
		return r.writeValue(w, resultValue(snap))
	}

	data := map[string]any{
		"title":   snap.Title,
		"phase":   string(snap.Phase),
		"message": snap.Message,
	}
	if res := snap.Result; res != nil {
		data["status"] = res.Status
		data["runId"] = res.RunID
		if res.Stats != nil {
			data["runTime"] = value.FormatNumber(res.Stats.RunTimeSecs)
		}
		if snap.Err == nil {
			output := res.Output()
			data["hasOutput"] = !output.IsNull()
			data["output"] = r.coercion.ToText(output)
		}
	}
	_, err := r.templates.RenderTemplate(TemplateResult, data, w)
	return err
}

func resultValue(snap session.Snapshot) value.Value {
	if snap.Result != nil {
		return snap.Result.Payload
	}
	if snap.Err != nil {
		return value.Object(
			value.Member{Key: "error", Value: value.String(snap.Message)},
			value.Member{Key: "kind", Value: value.String(string(snap.Err.Kind))},
		)
	}
	return value.Object()
}

func (r *Reporter) writeValue(w io.Writer, v value.Value) error {
	switch r.format {
	case FormatJSON:
		text, err := value.Indent(v)
		if err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		_, err = io.WriteString(w, text+"\n")
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
	}
}
