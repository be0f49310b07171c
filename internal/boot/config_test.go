package boot

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	t.Run("Defaults", func(t *testing.T) {
		config, err := LoadWith(envconfig.MapLookuper(map[string]string{}))
		assert.Nil(err)
		assert.True(config.IsDevelopment())
		assert.Equal("3000", config.Server.Port)
		assert.Equal("8081", config.Server.MetricsPort)
		assert.Equal(10*time.Second, config.Server.RequestTimeout)
		assert.Equal("sqlite3", config.Database.Driver)
		assert.Equal(10, config.Database.MaxOpenConns)
		assert.Equal(int64(1000), config.Points.SubmissionAward)
		assert.Equal(int64(10), config.Points.CommunityPostAward)
		assert.Equal(int64(30), config.Points.ConclusionAward)
		assert.Equal(model.DuplicatesAllow, config.Points.DuplicateSubmissions)
		assert.True(config.Points.PasswordPolicy)
		assert.Equal(config.UploadDir, config.DataDirectory())
	})

	t.Run("Overrides", func(t *testing.T) {
		config, err := LoadWith(envconfig.MapLookuper(map[string]string{
			"ENV":                   "prod",
			"DB_DRIVER":             "mysql",
			"DATABASE_URL":          "mysql://app:secret@db:3306/cybermaker",
			"DUPLICATE_SUBMISSIONS": "reject",
			"ALLOWED_ORIGINS":       "https://a.example.com, https://b.example.com",
			"SESSION_TTL":           "2h",
		}))
		assert.Nil(err)
		assert.True(config.IsProduction())
		assert.Equal("mysql", config.Database.Driver)
		assert.Equal(model.DuplicatesReject, config.Points.DuplicateSubmissions)
		assert.Equal([]string{"https://a.example.com", "https://b.example.com"}, config.AllowedOrigins())
		assert.Equal(2*time.Hour, config.Session.TTL)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := LoadWith(envconfig.MapLookuper(map[string]string{"DB_DRIVER": "postgres"}))
		assert.Error(err)
		_, err = LoadWith(envconfig.MapLookuper(map[string]string{"DUPLICATE_SUBMISSIONS": "sometimes"}))
		assert.Error(err)
		_, err = LoadWith(envconfig.MapLookuper(map[string]string{"SUBMISSION_AWARD": "-1"}))
		assert.Error(err)
	})
}
