package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

// Bootstrap is read before anything else, since it decides where the rest of the
// environment comes from.
type Bootstrap struct {
	Env            string `env:"GO_ENV"           envDefault:"development"`
	SSMParamPrefix string `env:"SSM_PARAM_PREFIX" envDefault:"/eventmarket/prod/"`
}

func (b *Bootstrap) Production() bool {
	return b.Env == "production"
}

// LoadBootstrap parses only the bootstrap variables of the process environment.
func LoadBootstrap() (*Bootstrap, error) {
	return parseBootstrap(env.Options{})
}

func LoadBootstrapFrom(vars map[string]string) (*Bootstrap, error) {
	return parseBootstrap(env.Options{Environment: vars})
}

func parseBootstrap(opts env.Options) (*Bootstrap, error) {
	var b Bootstrap
	if err := env.ParseWithOptions(&b, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &b, nil
}

// Config is the whole runtime configuration, read from the environment once at startup.
type Config struct {
	Bootstrap

	Port int    `env:"PORT"   envDefault:"7070"`

	InvitationCost   float64 `env:"INVITATION_COST"   envDefault:"1"`
	ConversionReward float64 `env:"CONVERSION_REWARD" envDefault:"10"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	DataDir      string `env:"DATA_DIR"      envDefault:"data"`
	SQLitePath   string `env:"SQLITE_PATH"   envDefault:"marketplace.db"`
	S3Bucket     string `env:"S3_BUCKET_NAME"`
	S3Region     string `env:"AWS_S3_REGION" envDefault:"us-east-2"`
	S3KeyPrefix  string `env:"S3_KEY_PREFIX" envDefault:"collections/"`

	AuthEnabled   bool   `env:"AUTH_ENABLED"       envDefault:"false"`
	CognitoRegion string `env:"AWS_COGNITO_REGION" envDefault:"us-east-2"`
	CognitoPoolID string `env:"AWS_COGNITO_POOL_ID"`

	// Zero disables the expiry sweeper, leaving expiry to explicit calls.
	ProposalTTL         time.Duration `env:"PROPOSAL_TTL"          envDefault:"0s"`
	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"1h"`

	InviteBaseURL string `env:"INVITE_BASE_URL" envDefault:"https://eventmarket.app/invite"`

	// Empty disables websocket push delivery.
	WSGatewayEndpoint string `env:"WS_GATEWAY_ENDPOINT"`
	WSGatewayRegion   string `env:"WS_GATEWAY_REGION" envDefault:"us-east-2"`
}

// Load parses the process environment into a Config and validates it.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables only, ignoring the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.StoreBackend {
	case BackendFile, BackendSQLite:
	case BackendS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET_NAME is required for the s3 store backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	if c.InvitationCost < 0 {
		errs = append(errs, errors.New("INVITATION_COST must not be negative"))
	}
	if c.ConversionReward < 0 {
		errs = append(errs, errors.New("CONVERSION_REWARD must not be negative"))
	}
	if c.ProposalTTL < 0 {
		errs = append(errs, errors.New("PROPOSAL_TTL must not be negative"))
	}
	if c.ProposalTTL > 0 && c.ExpirySweepInterval <= 0 {
		errs = append(errs, errors.New("EXPIRY_SWEEP_INTERVAL must be positive when PROPOSAL_TTL is set"))
	}
	if c.AuthEnabled && c.CognitoPoolID == "" {
		errs = append(errs, errors.New("AWS_COGNITO_POOL_ID is required when AUTH_ENABLED is set"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
