package types

// PathFilterConfig contains configuration for the path filter.
type PathFilterConfig struct {
	IgnoredPatterns   []string `json:"ignoredPatterns"   mapstructure:"ignored_patterns"`
	AllowedExtensions []string `json:"allowedExtensions" mapstructure:"allowed_extensions"`
}
