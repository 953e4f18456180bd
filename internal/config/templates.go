package config

import (
	"fmt"
	"os"
)

// Template returns the default scadminctl config file.
func Template() string {
	return defaultTemplate
}

// WriteTemplate writes Template to path. An existing file is kept unless
// overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template()), 0o600)
}

const defaultTemplate = `client_id = "scadminctl"
api_version = 1
output = "text"
log_level = "info"
max_client_id_bytes = 1024
max_payload_bytes = 8388608
`
