package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

type Server struct {
	HTTPPort      int    `default:"8000" validate:"gt=0,lt=65536"`
	ServerMode    string `default:"dev" validate:"oneof=dev prod"`
	StaticsFolder string
	// TLSCertFile and TLSKeyFile are used in prod mode. A self-signed
	// certificate is generated when they are empty.
	TLSCertFile string `validate:"required_with=TLSKeyFile"`
	TLSKeyFile  string `validate:"required_with=TLSCertFile"`
}

type Store struct {
	// Path of the DuckDB file. ":memory:" keeps everything in memory.
	Path string `default:"sizer.duckdb" validate:"required"`
}

type Catalog struct {
	FilePath string
}

type Authentication struct {
	Enabled bool `default:"false"`
	// JWTFilePath points to the PEM encoded RSA public key used to verify tokens.
	JWTFilePath string `validate:"required_if=Enabled true"`
}

type Log struct {
	Level  string `default:"info" validate:"oneof=debug info warn error"`
	Format string `default:"console" validate:"oneof=console json"`
}

type Configuration struct {
	Server  Server
	Store   Store
	Catalog Catalog
	Auth    Authentication
	Log     Log
	// Workers bounds the number of profiles sized concurrently on compare.
	Workers int `default:"4" validate:"gte=1"`
	Sizing  sizing.SizingConfig
}

type Option func(*Configuration)

func WithStorePath(path string) Option {
	return func(c *Configuration) {
		c.Store.Path = path
	}
}

func WithSizing(cfg sizing.SizingConfig) Option {
	return func(c *Configuration) {
		c.Sizing = cfg
	}
}

func NewConfigurationWithOptionsAndDefaults(opts ...Option) *Configuration {
	c := &Configuration{}
	defaults.MustSet(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the whole configuration and reports every violation.
func (c *Configuration) Validate() error {
	return toInvalidConfig(validate.Struct(c))
}

// ValidateSizing checks the bounds of a sizing config received from a caller.
func ValidateSizing(cfg sizing.SizingConfig) error {
	return toInvalidConfig(validate.Struct(cfg))
}

func toInvalidConfig(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	violations := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, violation(fe))
	}
	return srvErrors.NewInvalidConfigError(violations...)
}

func violation(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Configuration.")
	field = strings.TrimPrefix(field, "SizingConfig.")
	if fe.Param() == "" {
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
	return fmt.Sprintf("%s: must satisfy %s=%s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
}
