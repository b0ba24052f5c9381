package types

import "time"

// Default endpoints and limits.
const (
	DefaultAPIURL      = "https://inspirehep.net/api/literature"
	DefaultWebURL      = "https://inspirehep.net/literature"
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "inspirehep-engine/0.1"
	DefaultLibraryPath = "inspirehep-library.db"
	DefaultAddress     = "127.0.0.1:8765"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// InspireConfig holds the InspireHEP endpoints.
type InspireConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIURL is the literature search endpoint. Record BibTeX is served
	// from APIURL/{id}?format=bibtex.
	APIURL string `json:"api_url" yaml:"api_url"`

	// WebURL is the base of the human-facing record pages.
	WebURL string `json:"web_url" yaml:"web_url"`
}

// LibraryConfig holds settings for the local record library.
type LibraryConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format"`
}

// ServerConfig holds settings for the HTTP tool surface.
type ServerConfig struct {
	Address string `json:"address" yaml:"address"`
}

// Config groups the settings of every component.
type Config struct {
	Inspire InspireConfig `json:"inspire" yaml:"inspire"`
	Library LibraryConfig `json:"library" yaml:"library"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}

// DefaultConfig returns the configuration used when no file or flag overrides a value.
func DefaultConfig() Config {
	return Config{
		Inspire: InspireConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			APIURL: DefaultAPIURL,
			WebURL: DefaultWebURL,
		},
		Library: LibraryConfig{Path: DefaultLibraryPath},
		Log:     LogConfig{Level: "info", Format: "console"},
		Server:  ServerConfig{Address: DefaultAddress},
	}
}
