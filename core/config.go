package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries all settings consumed by the navigation and session core.
// It is built once at startup and injected everywhere; packages must not
// reach for an ambient singleton.
type Config struct {
	Debug    bool
	TestMode bool
	AppName  string
	Env      string `mapstructure:"-"`
	Build    string

	// backend collaborator
	BackendBaseURL string
	RedisURL       string

	// routing
	LoginRoute       string
	DashboardRoute   string
	HierarchicalURLs bool
	ExcludedPrefixes []string

	// session
	TokenExpirationDelta      time.Duration
	RememberMeExpirationDelta time.Duration
	SessionCheckInterval      time.Duration

	// reporting
	RollbarToken string
}

// NewConfig loads configuration: defaults first, then an optional
// config/.env.<env> file, then environment variables prefixed with the
// current ENV name.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Njia")
	v.SetDefault("build", "")
	v.SetDefault("backendBaseURL", "http://localhost:8000/api/v1")
	v.SetDefault("redisURL", "redis://localhost:6379/0")
	v.SetDefault("loginRoute", "/login")
	v.SetDefault("dashboardRoute", "/dashboard")
	v.SetDefault("hierarchicalURLs", true)
	v.SetDefault("excludedPrefixes", []string{"/login", "/register", "/forgot-password", "/reset-password"})
	v.SetDefault("tokenExpirationDelta", 24*time.Hour)
	v.SetDefault("rememberMeExpirationDelta", 30*24*time.Hour)
	v.SetDefault("sessionCheckInterval", time.Minute)
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}
	conf.Env = env
	return conf, nil
}
