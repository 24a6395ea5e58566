package hover

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/number"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/parser/css"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/shadow"
	"bennypowers.dev/svls/internal/values"
	"bennypowers.dev/svls/internal/variables"
	"bennypowers.dev/svls/lsp/helpers/analysis"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// tokenHover is the view rendered by tokenHoverTemplate.
type tokenHover struct {
	Category string
	Property string
	Raw      string
	// Resolved is set when it differs from Raw.
	Resolved string
	Parsed   bool
	Title    string
	Details  []string
}

var tokenHoverTemplate = template.Must(template.New("tokenHover").Parse(`# {{.Category}}
{{if .Property}}
**Property**: ` + "`{{.Property}}`" + `
{{end}}
**Value**: ` + "`{{.Raw}}`" + `
{{if .Resolved}}
**Resolved**: ` + "`{{.Resolved}}`" + `
{{end}}{{if not .Parsed}}
*Not editable: the value does not parse.*
{{end}}{{if .Details}}
**{{.Title}}**
{{range .Details}}
- {{.}}{{end}}
{{end}}`))

// variableHover describes a var() reference that did not become a token.
type variableHover struct {
	Name     string
	Declared bool
	Value    string
	Fallback string
	// Cycle is the rendered reference loop, empty when there is none.
	Cycle        string
	References   []string
	ReferencedBy []string
}

var variableHoverTemplate = template.Must(template.New("variableHover").Parse(`# var()

**Variable**: ` + "`{{.Name}}`" + `
{{if .Declared}}
**Declared**: ` + "`{{.Value}}`" + `
{{else}}
*Not declared in this document.*
{{end}}{{if .Fallback}}
**Fallback**: ` + "`{{.Fallback}}`" + `
{{end}}{{if .Cycle}}
**Cycle**: {{.Cycle}}
{{end}}{{if .References}}
**References**
{{range .References}}
- ` + "`{{.}}`" + `{{end}}
{{end}}{{if .ReferencedBy}}
**Referenced by**
{{range .ReferencedBy}}
- ` + "`{{.}}`" + `{{end}}
{{end}}`))

// Hover handles the textDocument/hover request
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	position := params.Position

	log.Debug("Hover requested: %s at line %d, char %d", uri, position.Line, position.Character)

	a := analysis.Analyze(req.Server, uri)
	if a == nil {
		return nil, nil
	}
	tok, ok := a.TokenAt(position)
	if !ok {
		return variableAt(a, position)
	}

	content, err := render(tokenHoverTemplate, describe(a, tok))
	if err != nil {
		return nil, fmt.Errorf("failed to render hover: %w", err)
	}
	rng := a.Range(tok)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
		Range: &rng,
	}, nil
}

// variableAt describes the var() call under p, so references that resolve
// to nothing still explain why.
func variableAt(a *analysis.Analysis, p protocol.Position) (*protocol.Hover, error) {
	off, err := a.Index().Offset(p)
	if err != nil {
		return nil, nil
	}
	result, err := parser.ParseCSSFromDocument(a.Content, a.LanguageID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS: %w", err)
	}
	call, ok := result.VarCallAt(off)
	if !ok {
		return nil, nil
	}

	content, err := render(variableHoverTemplate, describeVariable(a.Context().Vars, call))
	if err != nil {
		return nil, fmt.Errorf("failed to render hover: %w", err)
	}
	rng := a.Index().Range(call.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
		Range: &rng,
	}, nil
}

func describeVariable(vars variables.Map, call *css.VarCall) variableHover {
	view := variableHover{Name: call.Name}
	if call.HasFallback {
		view.Fallback = strings.TrimSpace(call.Fallback)
	}
	view.Value, view.Declared = vars.Lookup(call.Name)

	graph := variables.BuildGraph(vars)
	if cycle := graph.CycleFrom(call.Name); cycle != nil {
		view.Cycle = "`" + strings.Join(cycle, "` → `") + "`"
	}
	view.References = graph.Dependencies(call.Name)
	view.ReferencedBy = graph.Dependents(call.Name)
	return view
}

func render(t *template.Template, view any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func describe(a *analysis.Analysis, tok scanner.Token) tokenHover {
	raw := a.Text(tok)
	view := tokenHover{
		Category: tok.Category.String(),
		Property: tok.Property,
		Raw:      raw,
	}

	v, ok := a.Value(tok)
	view.Parsed = ok
	if !ok {
		return view
	}

	resolved := raw
	if strings.Contains(raw, "var(") {
		resolved = v.Recompose()
	}
	switch v := v.(type) {
	case values.Color:
		resolved = v.Resolved
		view.Title = "Channels"
		r, g, b := v.Model.Bytes()
		view.Details = []string{
			fmt.Sprintf("hex `%s`", v.Model.Hex()),
			fmt.Sprintf("rgb `%d, %d, %d`", r, g, b),
			"alpha `" + number.Format(v.Model.A, 2) + "`",
		}

	case values.Gradient:
		resolved = v.Resolved
		view.Title = v.Model.Type + " stops"
		if v.Model.Prefix != "" {
			view.Title += " (" + v.Model.Prefix + ")"
		}
		for _, s := range v.Model.Stops {
			view.Details = append(view.Details, "`"+s.String()+"`")
		}

	case values.Shadow:
		view.Title = "Shadows"
		for _, s := range v.Model.Shadows {
			one := shadow.List{Box: v.Model.Box, Shadows: []shadow.Shadow{s}}
			view.Details = append(view.Details, "`"+one.Recompose()+"`")
		}

	case values.Transform:
		view.Title = "Components"
		for _, c := range v.Model.ActiveComponents() {
			val := v.Model.Get(c)
			view.Details = append(view.Details, fmt.Sprintf("%s `%s%s`", c, number.Format(val.Num, 3), val.Unit))
		}
		for _, item := range v.Model.Items {
			if !item.Recognized {
				view.Details = append(view.Details, "kept as written `"+item.Raw+"`")
			}
		}

	case values.Keyword:
		view.Title = "Options"
		for _, o := range v.Model.Options {
			if strings.EqualFold(o, v.Model.Value) {
				o = "**" + o + "** (current)"
			}
			view.Details = append(view.Details, o)
		}

	case values.Number:
		view.Title = "Number"
		r := v.Range()
		view.Details = []string{"value `" + number.Format(v.Model.Value, v.Model.Decimals) + "`"}
		if v.Model.Unit != "" {
			view.Details = append(view.Details, "unit `"+v.Model.Unit+"`")
		}
		view.Details = append(view.Details, fmt.Sprintf("range `%s` to `%s`, step `%s`",
			number.Format(r.Min, 3), number.Format(r.Max, 3), number.Format(r.Step, 3)))
	}

	if resolved != raw {
		view.Resolved = resolved
	}
	return view
}
