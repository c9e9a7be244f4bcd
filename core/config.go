package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string
		AppName  string

		SecretKey     string
		AdminPassword string

		Server   ServerConfig
		Database DatabaseConfig
		Storage  StorageConfig
		Rollbar  RollbarConfig
	}

	ServerConfig struct {
		Host                 string
		Port                 int
		DebugHost            string
		ShutdownTimeout      time.Duration
		TokenExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	StorageConfig struct {
		Dir string
		// PublicBaseURL, when set, turns document fetches into redirects
		// to <PublicBaseURL>/<ref> instead of streaming the file.
		PublicBaseURL string
	}

	RollbarConfig struct {
		Token string
	}
)

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Mipango")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "w3lc0me-2-m1pang0!ch4ng3-m3-1n-pr0d")
	conf.SetDefault("adminPassword", "admin")

	conf.SetDefault("server.host", "0.0.0.0")
	conf.SetDefault("server.port", 8000)
	conf.SetDefault("server.debugHost", "0.0.0.0:9000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.tokenExpirationDelta", 30*24*time.Hour)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.name", "mipango")
	conf.SetDefault("database.user", "mipango")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.adminUser", "")
	conf.SetDefault("database.adminPassword", "")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", 5432)
	conf.SetDefault("database.disableTLS", true)

	conf.SetDefault("storage.dir", filepath.Join(os.TempDir(), "mipango-uploads"))
	conf.SetDefault("storage.publicBaseURL", "")

	conf.SetDefault("rollbar.token", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetDefault("env", env)
	conf.SetDefault("testMode", env == "TEST")

	// load .env.<env> if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	return &Config{
		Debug:         conf.GetBool("debug"),
		TestMode:      conf.GetBool("testMode"),
		Env:           conf.GetString("env"),
		Build:         conf.GetString("build"),
		AppName:       conf.GetString("appName"),
		SecretKey:     conf.GetString("secretKey"),
		AdminPassword: conf.GetString("adminPassword"),
		Server: ServerConfig{
			Host:                 conf.GetString("server.host"),
			Port:                 conf.GetInt("server.port"),
			DebugHost:            conf.GetString("server.debugHost"),
			ShutdownTimeout:      conf.GetDuration("server.shutdownTimeout"),
			TokenExpirationDelta: conf.GetDuration("server.tokenExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetInt("database.port"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
		Storage: StorageConfig{
			Dir:           conf.GetString("storage.dir"),
			PublicBaseURL: conf.GetString("storage.publicBaseURL"),
		},
		Rollbar: RollbarConfig{
			Token: conf.GetString("rollbar.token"),
		},
	}
}
