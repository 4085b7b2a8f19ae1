// FILE: lixenwraith/dotenv/register_test.go
package dotenv

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

func (l level) String() string {
	return [...]string{"debug", "info", "warn"}[l]
}

func TestRegisterStruct(t *testing.T) {
	t.Run("TagsAndNames", func(t *testing.T) {
		type Database struct {
			Host     string `env:"HOST"`
			MaxConns int
		}
		type Config struct {
			Name     string        `env:"NAME"`
			HTTPPort int           `env:",omitempty"`
			Debug    bool          `env:"DEBUG"`
			Ratio    float64       `env:"RATIO"`
			Timeout  time.Duration `env:"TIMEOUT"`
			Tags     []string      `env:"TAGS"`
			Secret   string        `env:"-"`
			Level    level         `env:"LEVEL"`
			Bind     net.IP        `env:"BIND"`
			Since    time.Time     `env:"SINCE"`
			Database Database      `env:"DB"`
			Cache    *Database     `env:"CACHE"`
			internal string
		}

		defaults := Config{
			Name:     "svc",
			HTTPPort: 8080,
			Ratio:    0.5,
			Timeout:  5 * time.Second,
			Tags:     []string{"a", "b"},
			Secret:   "hidden",
			Level:    1,
			Bind:     net.ParseIP("127.0.0.1"),
			Since:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			Database: Database{Host: "db", MaxConns: 10},
			internal: "x",
		}

		s := NewStore()
		require.NoError(t, s.RegisterStruct("APP_", defaults))

		assert.Equal(t, map[string]string{
			"APP_NAME":         "svc",
			"APP_HTTP_PORT":    "8080",
			"APP_DEBUG":        "false",
			"APP_RATIO":        "0.5",
			"APP_TIMEOUT":      "5s",
			"APP_TAGS":         "a,b",
			"APP_LEVEL":        "info",
			"APP_BIND":         "127.0.0.1",
			"APP_SINCE":        "2024-01-02T03:04:05Z",
			"APP_DB_HOST":      "db",
			"APP_DB_MAX_CONNS": "10",
		}, s.SourceValues(SourceDefault))
	})

	t.Run("PointerAndErrors", func(t *testing.T) {
		type Config struct {
			Port int `env:"PORT"`
		}
		s := NewStore()
		require.NoError(t, s.RegisterStruct("", &Config{Port: 1}))
		v, _ := s.Get("PORT")
		assert.Equal(t, "1", v)

		assert.Error(t, s.RegisterStruct("", (*Config)(nil)))
		assert.Error(t, s.RegisterStruct("", 42))
	})

	t.Run("InvalidFieldKey", func(t *testing.T) {
		type Config struct {
			Bad string `env:"not-valid"`
		}
		err := NewStore().RegisterStruct("", Config{Bad: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Bad")
	})

	t.Run("DefaultsLoseToFile", func(t *testing.T) {
		type Config struct {
			Port int `env:"PORT"`
		}
		s := NewStore()
		require.NoError(t, s.RegisterStruct("", Config{Port: 80}))
		require.NoError(t, s.SetSource(SourceFile, "PORT", "8080"))
		v, _ := s.Int64("PORT")
		assert.Equal(t, int64(8080), v)
	})
}

func TestUpperSnake(t *testing.T) {
	tests := map[string]string{
		"Name":      "NAME",
		"MaxConns":  "MAX_CONNS",
		"HTTPPort":  "HTTP_PORT",
		"APIKey":    "API_KEY",
		"Retry3Max": "RETRY3_MAX",
		"ID":        "ID",
	}
	for in, want := range tests {
		assert.Equal(t, want, upperSnake(in), in)
	}
}
