package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# tfdiag configuration
# Priority: TFDIAG_* environment > .tfdiag/config.yml > ~/.config/tfdiag/config.yml > defaults

no_color: false                       # Disable colored output
output: text                          # text | yaml
max_parallel: 4                       # Records classified concurrently by 'tfdiag classify' (1-64)

# Exit codes that count as success, per kind. Unlisted kinds succeed only on 0.
success_codes:
  plan: [0, 2]                        # terraform plan -detailed-exitcode
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"no_color":     false,
		"output":       "text",
		"max_parallel": 4,
	}
}
