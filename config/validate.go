package config

import (
	"fmt"
	"strings"
)

// Validate checks that the selected database driver has what it needs to connect
// and that the remaining settings are usable.
func (c *Config) Validate() error {
	var problems []string

	switch c.DBDriver {
	case DBDriverSQLite:
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH is required for the sqlite driver")
		}
	case DBDriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres driver")
		}
	case DBDriverLibSQL:
		if c.TursoDatabaseURL == "" {
			problems = append(problems, "TURSO_DATABASE_URL is required for the libsql driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	if c.SecretKeyFile == "" {
		problems = append(problems, "SECRET_KEY_FILE must not be empty")
	}

	if !c.EmailTestMode && c.ResendAPIKey == "" && len(c.DigestRecipients) > 0 {
		problems = append(problems, "RESEND_API_KEY is required when EMAIL_TEST_MODE is off")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}
