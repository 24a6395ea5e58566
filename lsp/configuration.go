package lsp

import (
	"bennypowers.dev/svls/internal/config"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/parser"
	"bennypowers.dev/svls/internal/uriutil"
)

// GetConfig returns the current server configuration
func (s *Server) GetConfig() config.Config {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig replaces the server configuration and applies it to the
// document history and the scan cache.
func (s *Server) SetConfig(cfg config.Config) {
	s.configMu.Lock()
	s.config = cfg
	s.configMu.Unlock()

	s.documents.SetHistoryDelay(cfg.HistoryDelay.Std())
	s.scans.Resize(cfg.ScanCacheSize)
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Ignoring log level: %v", err)
	}
}

// LoadConfig reads the workspace configuration, or the file given on the
// command line, and makes it current. On error the configuration is left
// unchanged.
func (s *Server) LoadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if s.configPath != "" {
		cfg, err = config.ReadFile(s.configPath)
	} else {
		cfg, err = config.Load(s.RootPath())
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.SetConfig(cfg)
	log.Debug("Loaded configuration: %+v", cfg)
	return nil
}

// IsIncluded reports whether a document gets annotations: its language
// must carry style values and its path must match the include globs.
func (s *Server) IsIncluded(uri, languageID string) bool {
	if !parser.IsCSSSupportedLanguage(languageID) {
		return false
	}
	return s.GetConfig().Includes(s.RootPath(), uriutil.URIToPath(uri))
}
