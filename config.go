package slackhook

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the static configuration consumed by a Sink. It mirrors the
// settings an appender/config collaborator would supply per webhook target.
type Config struct {
	// WebhookURL is the Slack incoming-webhook endpoint. Required.
	WebhookURL string

	// Channel optionally overrides the channel the webhook posts to.
	Channel string

	// Username is the display name for posted messages.
	Username string

	// IconURL and IconEmoji select the message icon. They are mutually
	// exclusive; Validate rejects a configuration that sets both.
	IconURL   string
	IconEmoji string

	// AddAttachment enables the metadata attachment block (severity color,
	// exception/logger/process/machine fields).
	AddAttachment bool

	// AddExceptionTraceField is reserved for a future stack-trace field.
	// The exception message field is always present when AddAttachment is set.
	AddExceptionTraceField bool

	// UsernameAppendLoggerName appends " - <logger>" to the display username
	// and drops the Logger field from the attachment.
	UsernameAppendLoggerName bool

	// Timeout bounds each delivery attempt. Zero means the default of 30s.
	Timeout time.Duration
}

// Validate checks the configuration for use with New.
func (c Config) Validate() error {
	if strings.TrimSpace(c.WebhookURL) == "" {
		return errors.New("slackhook: webhook URL is required")
	}

	if c.IconURL != "" && c.IconEmoji != "" {
		return errors.New("slackhook: icon URL and icon emoji are mutually exclusive")
	}

	return nil
}

// ConfigFromEnv builds a Config from SLACKHOOK_* environment variables.
// Invalid boolean or duration values are reported via the standard logger
// and fall back to their zero values, so a bad variable never panics.
func ConfigFromEnv() Config {
	cfg := Config{
		WebhookURL:               os.Getenv("SLACKHOOK_WEBHOOK_URL"),
		Channel:                  os.Getenv("SLACKHOOK_CHANNEL"),
		Username:                 os.Getenv("SLACKHOOK_USERNAME"),
		IconURL:                  os.Getenv("SLACKHOOK_ICON_URL"),
		IconEmoji:                os.Getenv("SLACKHOOK_ICON_EMOJI"),
		AddAttachment:            envBool("SLACKHOOK_ADD_ATTACHMENT"),
		AddExceptionTraceField:   envBool("SLACKHOOK_ADD_EXCEPTION_TRACE_FIELD"),
		UsernameAppendLoggerName: envBool("SLACKHOOK_USERNAME_APPEND_LOGGER_NAME"),
	}

	if v := os.Getenv("SLACKHOOK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("slackhook: invalid SLACKHOOK_TIMEOUT value %q, using default timeout", v)
		} else {
			cfg.Timeout = d
		}
	}

	return cfg
}

func envBool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("slackhook: invalid %s value %q, treating as false", key, v)

		return false
	}

	return b
}
