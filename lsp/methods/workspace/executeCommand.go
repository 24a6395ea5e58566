package workspace

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/svls/internal/documents"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/position"
	"bennypowers.dev/svls/lsp/helpers/analysis"
	"bennypowers.dev/svls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ExecuteCommand handles workspace/executeCommand. Edit commands change the
// server's copy of the document through its history, then ask the client to
// apply the same change with workspace/applyEdit. The WorkspaceEdit is also
// the command's result.
func ExecuteCommand(req *types.RequestContext, params *protocol.ExecuteCommandParams) (any, error) {
	log.Debug("Executing %s", params.Command)

	switch params.Command {
	case types.CommandReplaceToken:
		var args types.ReplaceTokenArgs
		if err := decodeArgs(params.Arguments, &args); err != nil {
			return nil, err
		}
		return replaceToken(req, args)

	case types.CommandUndo, types.CommandRedo:
		var args types.DocumentArgs
		if err := decodeArgs(params.Arguments, &args); err != nil {
			return nil, err
		}
		return history(req, params.Command, args.URI)

	case types.CommandTokens:
		var args types.DocumentArgs
		if err := decodeArgs(params.Arguments, &args); err != nil {
			return nil, err
		}
		return tokens(req, args.URI)

	default:
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
}

// decodeArgs reads the first command argument into v. Arguments arrive as
// generic JSON values from the wire, or as typed values when built in
// process.
func decodeArgs(arguments []any, v any) error {
	if len(arguments) == 0 {
		return fmt.Errorf("missing command argument")
	}
	data, err := json.Marshal(arguments[0])
	if err != nil {
		return fmt.Errorf("failed to marshal command argument: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("bad command argument: %w", err)
	}
	return nil
}

func replaceToken(req *types.RequestContext, args types.ReplaceTokenArgs) (*protocol.WorkspaceEdit, error) {
	doc := req.Server.Document(args.URI)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", documents.ErrNotFound, args.URI)
	}
	before := doc.Content()
	span, err := position.NewIndex(before).Span(args.Range)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", documents.ErrInvalidRange, err)
	}
	edits, err := req.Server.DocumentManager().Replace(args.URI, args.Version, span, args.Text)
	if err != nil {
		return nil, err
	}
	return applyEdit(req, "Edit value", args.URI, before, edits), nil
}

func history(req *types.RequestContext, command, uri string) (*protocol.WorkspaceEdit, error) {
	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", documents.ErrNotFound, uri)
	}
	before := doc.Content()

	manager := req.Server.DocumentManager()
	op, label := manager.Undo, "Undo"
	if command == types.CommandRedo {
		op, label = manager.Redo, "Redo"
	}
	edits, err := op(uri)
	if err != nil {
		return nil, err
	}
	return applyEdit(req, label, uri, before, edits), nil
}

const applyEditMethod = "workspace/applyEdit"

type applyEditResult struct {
	Applied       bool    `json:"applied"`
	FailureReason *string `json:"failureReason,omitempty"`
}

// applyEdit converts edits made against before into a WorkspaceEdit and
// sends it to the client. Nothing is sent for an empty edit list.
func applyEdit(req *types.RequestContext, label, uri, before string, edits []documents.Edit) *protocol.WorkspaceEdit {
	index := position.NewIndex(before)
	textEdits := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		textEdits = append(textEdits, protocol.TextEdit{
			Range:   index.Range(e.Span),
			NewText: e.Text,
		})
	}
	edit := &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: textEdits},
	}
	if len(textEdits) == 0 || !req.CanCall() {
		return edit
	}

	params := protocol.ApplyWorkspaceEditParams{Label: &label, Edit: *edit}
	// workspace/applyEdit is a request. Calling it synchronously would block
	// the message loop that has to read the client's response.
	go func(call func(string, any, any)) {
		var result applyEditResult
		call(applyEditMethod, params, &result)
		if !result.Applied {
			log.Warn("Client did not apply %s to %s", label, uri)
		}
	}(req.GLSP.Call)
	return edit
}

func tokens(req *types.RequestContext, uri string) (*types.TokensResult, error) {
	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", documents.ErrNotFound, uri)
	}
	a := analysis.Of(req.Server, doc)
	if a == nil {
		return &types.TokensResult{URI: uri, Version: doc.Version(), Tokens: []types.TokenInfo{}}, nil
	}
	result := &types.TokensResult{URI: uri, Version: a.Version, Tokens: make([]types.TokenInfo, 0, len(a.Tokens))}
	for _, tok := range a.Tokens {
		result.Tokens = append(result.Tokens, types.TokenInfo{
			Range:    a.Range(tok),
			Category: tok.Category.String(),
			Property: tok.Property,
			Text:     a.Text(tok),
		})
	}
	return result, nil
}
