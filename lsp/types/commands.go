package types

import protocol "github.com/tliron/glsp/protocol_3_16"

// Commands served through workspace/executeCommand.
const (
	CommandReplaceToken = "styleValues.replaceToken"
	CommandUndo         = "styleValues.undo"
	CommandRedo         = "styleValues.redo"
	CommandTokens       = "styleValues.tokens"
)

// Commands lists every command the server advertises.
var Commands = []string{CommandReplaceToken, CommandUndo, CommandRedo, CommandTokens}

// ReplaceTokenArgs is the argument of styleValues.replaceToken. Range is
// resolved against the document at Version.
type ReplaceTokenArgs struct {
	URI     string         `json:"uri"`
	Version int            `json:"version"`
	Range   protocol.Range `json:"range"`
	Text    string         `json:"text"`
}

// DocumentArgs is the argument of the commands that act on a whole document.
type DocumentArgs struct {
	URI string `json:"uri"`
}

// TokenInfo describes one token in the result of styleValues.tokens.
type TokenInfo struct {
	Range    protocol.Range `json:"range"`
	Category string         `json:"category"`
	Property string         `json:"property,omitempty"`
	Text     string         `json:"text"`
}

// TokensResult is the result of styleValues.tokens.
type TokensResult struct {
	URI     string      `json:"uri"`
	Version int         `json:"version"`
	Tokens  []TokenInfo `json:"tokens"`
}
