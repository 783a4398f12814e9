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

const (
	EnvDev  = "DEV"
	EnvTest = "TEST"
	EnvQA   = "QA"
	EnvProd = "PROD"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		Build        string
		RollbarToken string

		Server  ServerConfig
		Primary PrimaryConfig
		Local   LocalConfig
		Meal    MealConfig
		Log     LogConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		StaticDir       string
		DisableReqLogs  bool
		ShutdownTimeout time.Duration
		RateLimit       float64
	}

	// PrimaryConfig points at the remote PostgreSQL store.
	// An empty DSN leaves the primary store disconnected.
	PrimaryConfig struct {
		DSN             string
		MaxPingAttempts int
	}

	LocalConfig struct {
		Path string
	}

	MealConfig struct {
		APIKey     string
		BaseURL    string
		OfficeCode string
		SchoolCode string
		CSVPath    string
		Timeout    time.Duration
	}

	LogConfig struct {
		Dir   string
		Level string
	}
)

// IsPrimaryConfigured reports whether a primary store DSN was provided.
func (c PrimaryConfig) IsPrimaryConfigured() bool {
	return strings.TrimSpace(c.DSN) != ""
}

func newViper() *viper.Viper {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.staticDir", "static")
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.rateLimit", 10.0)

	v.SetDefault("primary.dsn", "")
	v.SetDefault("primary.maxPingAttempts", 5)

	v.SetDefault("local.path", "users.db")

	v.SetDefault("meal.apiKey", MealAPIKeyPlaceholder)
	v.SetDefault("meal.baseURL", "https://open.neis.go.kr/hub/mealServiceDietInfo")
	v.SetDefault("meal.officeCode", "G10")
	v.SetDefault("meal.schoolCode", "7430048")
	v.SetDefault("meal.csvPath", filepath.Join("static", "food_calender.csv"))
	v.SetDefault("meal.timeout", 5*time.Second)

	v.SetDefault("log.dir", "")
	v.SetDefault("log.level", "info")
	return v
}

// MealAPIKeyPlaceholder is the key value shipped in sample configs; it disables the NEIS API.
const MealAPIKeyPlaceholder = "YOUR_API_KEY_HERE"

// NewConfig loads the configuration for the environment named by $ENV.
func NewConfig() *Config {
	v := newViper()

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = EnvDev
	}
	if env == EnvTest {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			StaticDir:       v.GetString("server.staticDir"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			RateLimit:       v.GetFloat64("server.rateLimit"),
		},
		Primary: PrimaryConfig{
			DSN:             v.GetString("primary.dsn"),
			MaxPingAttempts: v.GetInt("primary.maxPingAttempts"),
		},
		Local: LocalConfig{
			Path: v.GetString("local.path"),
		},
		Meal: MealConfig{
			APIKey:     v.GetString("meal.apiKey"),
			BaseURL:    v.GetString("meal.baseURL"),
			OfficeCode: v.GetString("meal.officeCode"),
			SchoolCode: v.GetString("meal.schoolCode"),
			CSVPath:    v.GetString("meal.csvPath"),
			Timeout:    v.GetDuration("meal.timeout"),
		},
		Log: LogConfig{
			Dir:   v.GetString("log.dir"),
			Level: v.GetString("log.level"),
		},
	}
}
