package config

// SupportedExtensions are the extensions the converter handles with a real
// extractor. Anything else converts to the "not supported" sentence.
var SupportedExtensions = []string{".docx", ".xlsx", ".pptx", ".html", ".zip", ".txt"}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 32 << 20
	}
	if cfg.Convert.ErrorMode == "" {
		cfg.Convert.ErrorMode = "empty"
	}
	if cfg.Convert.PreviewChars == 0 {
		cfg.Convert.PreviewChars = 1000
	}
	// MaxDepth and MaxArchiveBytes stay 0 (unlimited) unless set: small
	// well-formed inputs must behave identically with and without a config.
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = append([]string(nil), SupportedExtensions...)
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
