package boot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

type Config struct {
	Env         string `env:"ENV,default=dev"`
	BaseURL     string `env:"BASE_URL,default=http://localhost:3000"`
	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:3000"`
	StaticDir   string `env:"STATIC_DIR,default=./public"`
	UploadDir   string `env:"UPLOAD_DIR,default=./uploads"`
	AdminKey    string `env:"ADMIN_KEY"`
	Server      struct {
		Port           string        `env:"PORT,default=3000"`
		MetricsPort    string        `env:"METRICS_PORT,default=8081"`
		Origins        string        `env:"ALLOWED_ORIGINS,default=*"`
		RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
		BodyLimit      string        `env:"BODY_LIMIT,default=5M"`
	}
	Database struct {
		Driver          string        `env:"DB_DRIVER,default=sqlite3"`
		URL             string        `env:"DATABASE_URL,default=file:cybermaker.db"`
		MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=10"`
		MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=5"`
		ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=5m"`
	}
	SMTP struct {
		Host        string `env:"SMTP_HOST"`
		Port        int    `env:"SMTP_PORT,default=587"`
		User        string `env:"SMTP_USER"`
		Password    string `env:"SMTP_PASSWORD"`
		From        string `env:"SMTP_FROM,default=no-reply@cybermaker.local"`
		FromName    string `env:"SMTP_FROM_NAME,default=CyberMaker"`
		UseTLS      bool   `env:"SMTP_TLS,default=true"`
		TemplateDir string `env:"MAIL_TEMPLATE_DIR"`
	}
	Session struct {
		SigningKey string        `env:"SESSION_SIGNING_KEY"`
		TTL        time.Duration `env:"SESSION_TTL,default=24h"`
	}
	Points struct {
		PasswordPolicy       bool                  `env:"PASSWORD_POLICY,default=true"`
		SubmissionAward      int64                 `env:"SUBMISSION_AWARD,default=1000"`
		CommunityPostAward   int64                 `env:"COMMUNITY_POST_AWARD,default=10"`
		ConclusionAward      int64                 `env:"CONCLUSION_AWARD,default=30"`
		DuplicateSubmissions model.DuplicatePolicy `env:"DUPLICATE_SUBMISSIONS,default=allow"`
	}
}

func Load() (*Config, error) {
	return LoadWith(envconfig.OsLookuper())
}

func LoadWith(lookuper envconfig.Lookuper) (*Config, error) {
	config := &Config{}
	if err := envconfig.ProcessWith(context.Background(), config, lookuper); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Points.DuplicateSubmissions {
	case model.DuplicatesAllow, model.DuplicatesReject:
	default:
		return fmt.Errorf("unsupported DUPLICATE_SUBMISSIONS %q", c.Points.DuplicateSubmissions)
	}
	if c.Points.SubmissionAward < 0 || c.Points.CommunityPostAward < 0 || c.Points.ConclusionAward < 0 {
		return fmt.Errorf("point awards must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c *Config) DataDirectory() string {
	return c.UploadDir
}

func (c *Config) AllowedOrigins() []string {
	origins := strings.Split(c.Server.Origins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
