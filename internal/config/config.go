package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/morningmail/morning-email/internal/mailer"
	"github.com/morningmail/morning-email/internal/weather"
)

var validate = validator.New()

// Config is the full runtime configuration, loaded once at process start and
// passed into components. Credentials are never embedded in source.
type Config struct {
	// Mail transport. SMTP credentials are required unless the Resend
	// provider is selected.
	SMTPHost     string `validate:"required"`
	SMTPPort     int    `validate:"min=1,max=65535"`
	SMTPUsername string `validate:"required_if=MailProvider smtp"`
	SMTPPassword string `validate:"required_if=MailProvider smtp"`
	MailFrom     string `validate:"required,email"`
	MailFromName string
	MailProvider string `validate:"oneof=smtp resend"`
	ResendAPIKey string `validate:"required_if=MailProvider resend"`

	// Recipients to deliver to. Empty is a fatal configuration error.
	Recipients []mailer.Recipient

	// Location the forecast is fetched for.
	Location weather.Location

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*Config, error) {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.SMTPHost = getenvDefault("SMTP_HOST", "smtp.gmail.com")
	port, err := strconv.Atoi(getenvDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = port

	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.MailFrom = getenvDefault("MAIL_FROM", cfg.SMTPUsername)
	cfg.MailFromName = getenvDefault("MAIL_FROM_NAME", "Morning Email")
	cfg.MailProvider = getenvDefault("MAIL_PROVIDER", "smtp")
	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")

	recipients, err := loadRecipients()
	if err != nil {
		return nil, err
	}
	cfg.Recipients = recipients

	lat, err := getenvFloat("WEATHER_LAT", 51.5412)
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("WEATHER_LON", 9.9158)
	if err != nil {
		return nil, err
	}
	cfg.Location = weather.Location{
		City:     getenvDefault("WEATHER_CITY", "Goettingen"),
		Lat:      lat,
		Lon:      lon,
		Timezone: getenvDefault("WEATHER_TIMEZONE", "Europe/Berlin"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	if err := cfg.validateAll(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateAll() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if len(c.Recipients) == 0 {
		return errors.New("no recipients configured")
	}
	for _, r := range c.Recipients {
		if err := validate.Var(r.Address, "required,email"); err != nil {
			return fmt.Errorf("invalid recipient address %q: %w", r.Address, err)
		}
	}

	return nil
}

// loadRecipients parses the paired RECIPIENT_NAMES / RECIPIENT_EMAILS comma
// lists. Both lists must have the same length.
func loadRecipients() ([]mailer.Recipient, error) {
	namesRaw := os.Getenv("RECIPIENT_NAMES")
	addrsRaw := os.Getenv("RECIPIENT_EMAILS")

	if strings.TrimSpace(addrsRaw) == "" {
		return nil, errors.New("RECIPIENT_EMAILS must list at least one address")
	}

	names := strings.Split(namesRaw, ",")
	addrs := strings.Split(addrsRaw, ",")
	if len(names) != len(addrs) {
		return nil, fmt.Errorf("number of recipient names and emails must be the same")
	}

	var rcpts []mailer.Recipient
	for i := range addrs {
		rcpts = append(rcpts, mailer.Recipient{
			Name:    strings.TrimSpace(names[i]),
			Address: strings.TrimSpace(addrs[i]),
		})
	}

	return rcpts, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
