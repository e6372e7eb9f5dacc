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
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string
		Debug    bool
		TestMode bool
		AppName  string
		WorkDir  string

		SecretKey    string
		RollbarToken string

		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Storage  StorageConfig
		Report   ReportConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		InMemory      bool
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	}

	StorageConfig struct {
		Backend       string // "b2" | "bolt"
		Folder        string
		B2AccountID   string
		B2AppKey      string
		B2Bucket      string
		BoltPath      string
		PublicBaseURL string
	}

	ReportConfig struct {
		DocumentType string
	}
)

func (dc DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", dc.Host, dc.Port)
}

// NewConfig loads the configuration from the environment and from `config/.env.<env>` when present.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Casebook")
	v.SetDefault("secretKey", "q1m%v8z!c2l#k0x@d7w^r4t&y9u*e6s5")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("serverDisableReqLogs", false)

	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", 5432)
	v.SetDefault("dbName", "casebook")
	v.SetDefault("dbUser", "casebook")
	v.SetDefault("dbPassword", "casebook")
	v.SetDefault("dbAdminUser", "")
	v.SetDefault("dbAdminPassword", "")
	v.SetDefault("dbDisableTLS", true)
	v.SetDefault("dbInMemory", false)

	v.SetDefault("redisAddr", "")
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDB", 0)
	v.SetDefault("redisTTL", 10*time.Minute)

	v.SetDefault("storageBackend", "bolt")
	v.SetDefault("storageFolder", "progress-reports")
	v.SetDefault("storageB2AccountID", "")
	v.SetDefault("storageB2AppKey", "")
	v.SetDefault("storageB2Bucket", "")
	v.SetDefault("storageBoltPath", "documents.db")
	v.SetDefault("storagePublicBaseURL", "http://localhost:8000")

	v.SetDefault("reportDocumentType", "progress_report")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
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
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		WorkDir:      wd,
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Address:         v.GetString("serverAddress"),
			DebugHost:       v.GetString("serverDebugHost"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
			DisableReqLogs:  v.GetBool("serverDisableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetInt("dbPort"),
			Name:          v.GetString("dbName"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
			InMemory:      v.GetBool("dbInMemory"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redisAddr"),
			Password: v.GetString("redisPassword"),
			DB:       v.GetInt("redisDB"),
			TTL:      v.GetDuration("redisTTL"),
		},
		Storage: StorageConfig{
			Backend:       v.GetString("storageBackend"),
			Folder:        v.GetString("storageFolder"),
			B2AccountID:   v.GetString("storageB2AccountID"),
			B2AppKey:      v.GetString("storageB2AppKey"),
			B2Bucket:      v.GetString("storageB2Bucket"),
			BoltPath:      v.GetString("storageBoltPath"),
			PublicBaseURL: v.GetString("storagePublicBaseURL"),
		},
		Report: ReportConfig{
			DocumentType: v.GetString("reportDocumentType"),
		},
	}
}
