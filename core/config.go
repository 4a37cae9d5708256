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

// Config holds every external knob of the client. The backend base URL is the
// one input that must be right for anything to work; everything else has a
// sane default.
type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (default), TEST, QA, PROD
	Build    string

	AppName string

	API struct {
		// BaseURL is the backend origin plus the versioned API prefix,
		// e.g. http://127.0.0.1:8000/api/v1
		BaseURL        string
		RequestTimeout time.Duration
	}

	Storage struct {
		// Path is the directory where the client keeps its persistent
		// state (session token). Defaults to <user config dir>/<appName>.
		Path string
	}

	RollbarToken string
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "MatEdu")
	v.SetDefault("apiBaseUrl", "http://127.0.0.1:8000/api/v1")
	v.SetDefault("apiRequestTimeout", 30*time.Second)
	v.SetDefault("storagePath", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("build", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
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

	conf := &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.API.BaseURL = strings.TrimRight(v.GetString("apiBaseUrl"), "/")
	conf.API.RequestTimeout = v.GetDuration("apiRequestTimeout")
	conf.Storage.Path = v.GetString("storagePath")
	if conf.Storage.Path == "" {
		conf.Storage.Path = defaultStoragePath(conf.AppName)
	}
	return conf
}

func defaultStoragePath(appName string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, strings.ToLower(appName))
}
