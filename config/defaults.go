package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/scribetui",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Server: ServerConfig{
			URL:            "http://localhost:8080",
			RequestTimeout: 30,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Scribetui System Configuration
# Location: ~/.config/scribetui/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config and debug logs are stored
data_directory = "~/.local/share/scribetui"
`
}

func GenerateUserConfigTemplate() string {
	return `# Scribetui User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[server]
# Transcription server base URL
url = "http://localhost:8080"

# Per-request timeout in seconds
request_timeout_seconds = 30
`
}
