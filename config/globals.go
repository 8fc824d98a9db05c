package config

// GlobalFlags contains common flags used across commands
type GlobalFlags struct {
	// Common authentication and connection flags
	Org          string
	Token        string
	RegistryHost string
	APIBaseURL   string
	ConfigPath   string
	Format       string
	Debug        bool

	// Command-specific configurations
	Resolve ResolveConfig
	Badge   BadgeConfig
}

// ResolveConfig holds resolve command specific configurations
type ResolveConfig struct {
	Exclude    []string
	OutputFile string
	OutputName string
	Tag        string
}

// BadgeConfig holds badge command specific configurations
type BadgeConfig struct {
	GistID   string
	GistFile string
	Label    string
}

// Global is the shared instance of GlobalFlags
var Global = GlobalFlags{}
