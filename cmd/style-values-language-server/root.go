package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/position"
	"bennypowers.dev/svls/internal/scanner"
	"bennypowers.dev/svls/internal/uriutil"
	"bennypowers.dev/svls/internal/version"
	"bennypowers.dev/svls/lsp"
	"bennypowers.dev/svls/lsp/types"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel    string
	logLevelSet bool
	configPath  string
}

// newRootCmd builds the command tree. Running it without a subcommand
// serves LSP over stdio.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "style-values-language-server",
		Short:         "Language server for editing CSS style values in place",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			opts.logLevelSet = cmd.Flag("log-level").Changed
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file, instead of the workspace's")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve LSP over stdio",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(opts)
			},
		},
		newScanCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeJSON(cmd.OutOrStdout(), version.Get())
			},
		},
	)
	return root
}

// initialConfig is the configuration the server starts with: the
// --config file when given, and the --log-level flag when set.
func initialConfig(opts *rootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.ReadFile(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if opts.logLevelSet || opts.configPath == "" {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, nil
}

func serve(opts *rootOptions) error {
	cfg, err := initialConfig(opts)
	if err != nil {
		return err
	}
	server, err := lsp.NewServer(lsp.Options{ConfigPath: opts.configPath, Config: cfg})
	if err != nil {
		return fmt.Errorf("failed to create LSP server: %w", err)
	}
	defer func() { _ = server.Close() }()

	log.Info("Starting %s %s", "style-values-language-server", version.Get())
	if err := server.RunStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// languageIDs maps file extensions to LSP language identifiers.
var languageIDs = map[string]string{
	".css":  "css",
	".scss": "scss",
	".less": "less",
	".html": "html",
	".htm":  "html",
	".js":   "javascript",
	".mjs":  "javascript",
	".jsx":  "javascriptreact",
	".ts":   "typescript",
	".mts":  "typescript",
	".tsx":  "typescriptreact",
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	var language string
	var categories []string
	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Print the style value tokens of files as JSON",
		Long: "Scan prints the tokens the server annotates in each file. " +
			"With no files, it reads standard input and requires --language.",
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, err := categoryFilter(categories)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if language == "" {
					return fmt.Errorf("--language is required when reading standard input")
				}
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read standard input: %w", err)
				}
				return writeJSON(cmd.OutOrStdout(), scanContent("", string(data), language, keep))
			}

			results := make([]*types.TokensResult, 0, len(args))
			for _, path := range args {
				id := language
				if id == "" {
					id = languageIDs[strings.ToLower(filepath.Ext(path))]
				}
				if !parser.IsCSSSupportedLanguage(id) {
					return fmt.Errorf("cannot tell the language of %s; pass --language", path)
				}
				data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied path
				if err != nil {
					return err
				}
				abs, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				results = append(results, scanContent(uriutil.PathToURI(abs), string(data), id, keep))
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language identifier, such as css, html or typescript")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only print tokens of these categories, such as color,number")
	return cmd
}

// categoryFilter reads --category values. A nil filter keeps every token.
func categoryFilter(names []string) (map[scanner.Category]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	keep := make(map[scanner.Category]bool, len(names))
	for _, name := range names {
		c, err := scanner.ParseCategory(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		keep[c] = true
	}
	return keep, nil
}

func scanContent(uri, content, languageID string, keep map[scanner.Category]bool) *types.TokensResult {
	index := position.NewIndex(content)
	tokens := parser.ScanDocument(content, languageID)
	result := &types.TokensResult{URI: uri, Tokens: make([]types.TokenInfo, 0, len(tokens))}
	for _, tok := range tokens {
		if keep != nil && !keep[tok.Category] {
			continue
		}
		result.Tokens = append(result.Tokens, types.TokenInfo{
			Range:    index.Range(tok.Span()),
			Category: tok.Category.String(),
			Property: tok.Property,
			Text:     tok.Text(content),
		})
	}
	return result
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
