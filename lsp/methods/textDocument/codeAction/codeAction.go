package codeaction

import (
	"fmt"
	"math"
	"strings"

	"bennypowers.dev/svls/internal/color"
	"bennypowers.dev/svls/internal/enum"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/number"
	"bennypowers.dev/svls/internal/patterns"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/values"
	"bennypowers.dev/svls/lsp/helpers/analysis"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CodeAction handles the textDocument/codeAction request. Every action is a
// styleValues.replaceToken command, so applying one goes through the
// document's edit history and can be undone as a unit.
//
// Tokens written as var() are skipped: their value belongs to the
// declaration they reference.
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	uri := params.TextDocument.URI

	log.Debug("CodeAction requested: %s", uri)

	actions := []protocol.CodeAction{}
	if !wantsKind(params.Context.Only, protocol.CodeActionKindRefactorRewrite) {
		return actions, nil
	}

	a := analysis.Analyze(req.Server, uri)
	if a == nil {
		return actions, nil
	}

	for _, tok := range tokensInRange(a, params.Range) {
		if strings.Contains(a.Text(tok), "var(") {
			continue
		}
		actions = append(actions, actionsFor(a, tok)...)
	}

	log.Debug("Returning %d code actions", len(actions))
	return actions, nil
}

// wantsKind reports whether a client filter admits kind. An empty filter
// admits everything; a filter entry admits its sub-kinds.
func wantsKind(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, k := range only {
		if k == kind || strings.HasPrefix(string(kind), string(k)+".") {
			return true
		}
	}
	return false
}

// tokensInRange returns the token under a collapsed range, or every token
// an expanded selection intersects.
func tokensInRange(a *analysis.Analysis, r protocol.Range) []scanner.Token {
	if r.Start == r.End {
		if tok, ok := a.TokenAt(r.Start); ok {
			return []scanner.Token{tok}
		}
		return nil
	}
	span, err := a.Index().Span(r)
	if err != nil {
		return nil
	}
	var out []scanner.Token
	for _, tok := range a.Tokens {
		if intersects(tok.Span(), span) {
			out = append(out, tok)
		}
	}
	return out
}

func intersects(a, b patterns.Span) bool {
	return a.Start < b.End && b.Start < a.End
}

// actionsFor builds the edit intents for one token. Each intent parses its
// own copy of the value, since the models are edited in place.
func actionsFor(a *analysis.Analysis, tok scanner.Token) []protocol.CodeAction {
	v, ok := a.Value(tok)
	if !ok {
		return nil
	}
	raw := a.Text(tok)

	var actions []protocol.CodeAction
	add := func(title, text string) {
		if text == raw || text == "" {
			return
		}
		actions = append(actions, protocol.CodeAction{
			Title:   title,
			Kind:    ptr(protocol.CodeActionKindRefactorRewrite),
			Command: a.ReplaceCommand(title, tok, text),
		})
	}
	fresh := func() values.Value {
		v, _ := a.Value(tok)
		return v
	}

	switch v := v.(type) {
	case values.Keyword:
		for _, alt := range v.Model.Alternatives() {
			k := enum.Keyword{Property: v.Model.Property, Value: alt}
			add(fmt.Sprintf("Change to %s", alt), k.Recompose())
		}

	case values.Transform:
		for _, c := range v.Model.ActiveComponents() {
			t := fresh().(values.Transform)
			t.Model.Deactivate(c)
			add(fmt.Sprintf("Remove %s", c), t.Recompose())
		}

	case values.Shadow:
		for i := range v.Model.Shadows {
			s := fresh().(values.Shadow)
			s.Model.Remove(i)
			add(fmt.Sprintf("Remove shadow %d", i+1), s.Recompose())
		}

	case values.Gradient:
		// A gradient needs two stops.
		if len(v.Model.Stops) > 2 {
			for i, stop := range v.Model.Stops {
				g := fresh().(values.Gradient)
				g.Model.RemoveStop(i)
				add(fmt.Sprintf("Remove stop %d (%s)", i+1, stop), g.Recompose())
			}
		}

	case values.Color:
		c := v.Model
		if c.HasAlpha() {
			add("Convert to hex", color.FromRGBA(c.R, c.G, c.B, c.A, "#00000000").Recompose())
		} else {
			add("Convert to hex", c.Hex())
		}
		add("Convert to rgb()", color.FromRGBA(c.R, c.G, c.B, c.A, "rgb()").Recompose())

	case values.Number:
		r := v.Range()
		decimals := max(v.Model.Decimals, decimalsOf(r.Step))
		step := func(title string, delta float64) {
			next := r.Clamp(v.Model.Value + delta)
			if next == v.Model.Value {
				return
			}
			add(title, number.Format(next, decimals)+v.Model.Unit)
		}
		step(fmt.Sprintf("Increase by %s", number.Format(r.Step, 3)), r.Step)
		step(fmt.Sprintf("Decrease by %s", number.Format(r.Step, 3)), -r.Step)
	}
	return actions
}

// decimalsOf returns the number of fractional digits step needs, up to 3.
func decimalsOf(step float64) int {
	for d := 0; d < 3; d++ {
		scaled := step * math.Pow(10, float64(d))
		if math.Abs(scaled-math.Round(scaled)) < 1e-9 {
			return d
		}
	}
	return 3
}

func ptr[T any](v T) *T {
	return &v
}
