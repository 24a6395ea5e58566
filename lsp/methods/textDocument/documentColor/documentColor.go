package documentcolor

import (
	"fmt"

	"bennypowers.dev/svls/internal/color"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/values"
	"bennypowers.dev/svls/lsp/helpers/analysis"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentColor handles the textDocument/documentColor request
func DocumentColor(req *types.RequestContext, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := params.TextDocument.URI

	log.Debug("DocumentColor requested: %s", uri)

	a := analysis.Analyze(req.Server, uri)
	if a == nil {
		return []protocol.ColorInformation{}, nil
	}

	colors := []protocol.ColorInformation{}
	for _, tok := range a.Tokens {
		if tok.Category != scanner.Color {
			continue
		}
		v, ok := a.Value(tok)
		c, isColor := v.(values.Color)
		if !ok || !isColor {
			// Don't fail the operation - the remaining colors are still useful.
			req.AddWarning(fmt.Errorf("unparseable color %q at %s:%d", a.Text(tok), uri, a.Range(tok).Start.Line+1))
			continue
		}
		colors = append(colors, protocol.ColorInformation{
			Range: a.Range(tok),
			Color: protocolColor(c.Model),
		})
	}

	log.Debug("Found %d colors", len(colors))
	return colors, nil
}

// ColorPresentation handles the textDocument/colorPresentation request.
// The first presentation keeps the notation of the literal being edited;
// hex and functional alternatives follow.
func ColorPresentation(req *types.RequestContext, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := params.TextDocument.URI

	log.Debug("ColorPresentation requested: %s", uri)

	a := analysis.Analyze(req.Server, uri)
	if a == nil {
		return []protocol.ColorPresentation{}, nil
	}
	tok, ok := a.TokenAt(params.Range.Start)
	if !ok || tok.Category != scanner.Color {
		return []protocol.ColorPresentation{}, nil
	}

	original := ""
	if v, ok := a.Value(tok); ok {
		if c, ok := v.(values.Color); ok {
			original = c.Resolved
		}
	}

	rgba := params.Color
	r, g, b, alpha := float64(rgba.Red), float64(rgba.Green), float64(rgba.Blue), float64(rgba.Alpha)
	hex := "#000000"
	if alpha < 1 {
		hex = "#00000000"
	}

	rng := a.Range(tok)
	var presentations []protocol.ColorPresentation
	seen := make(map[string]bool)
	for _, notation := range []string{original, hex, "rgb(0, 0, 0)"} {
		label := color.FromRGBA(r, g, b, alpha, notation).Recompose()
		if seen[label] {
			continue
		}
		seen[label] = true
		presentations = append(presentations, protocol.ColorPresentation{
			Label:    label,
			TextEdit: &protocol.TextEdit{Range: rng, NewText: label},
		})
	}
	return presentations, nil
}

func protocolColor(c *color.Color) protocol.Color {
	return protocol.Color{
		Red:   protocol.Decimal(c.R),
		Green: protocol.Decimal(c.G),
		Blue:  protocol.Decimal(c.B),
		Alpha: protocol.Decimal(c.A),
	}
}
