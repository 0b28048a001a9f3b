package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		SessionSignKey  string   `json:"session_sign_key"`
		SessionIssuer   string   `json:"session_issuer"`
		SessionDuration Duration `json:"session_duration"`
		BcryptCost      int      `json:"bcrypt_cost"`
		MediaBaseURL    string   `json:"media_base_url"`
		SecureCookies   bool     `json:"secure_cookies"`
		LogLevel        string   `json:"log_level"`
		Version         string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			Driver        string `json:"driver"`
			BinaryDataDir string `json:"binary_data_dir"`
			Endpoint      string `json:"endpoint"`
			AccessKey     string `json:"access_key"`
			SecretKey     string `json:"secret_key"`
			Bucket        string `json:"bucket"`
			Region        string `json:"region"`
			UseSSL        bool   `json:"use_ssl"`
		} `json:"files,omitempty"`

		Sessions struct {
			Driver        string `json:"driver"`
			RedisAddress  string `json:"redis_address"`
			RedisPassword string `json:"redis_password"`
			RedisDB       int    `json:"redis_db"`
		} `json:"sessions,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		BasePath       string   `json:"base_path"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadSize  int64    `json:"max_upload_size"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	app, storage, server := jsonCfg.App, jsonCfg.Storage, jsonCfg.Server
	cfg := &StructuredConfig{
		App: App{
			SessionSignKey:  app.SessionSignKey,
			SessionIssuer:   app.SessionIssuer,
			SessionDuration: time.Duration(app.SessionDuration),
			BcryptCost:      app.BcryptCost,
			MediaBaseURL:    app.MediaBaseURL,
			SecureCookies:   app.SecureCookies,
			LogLevel:        app.LogLevel,
			Version:         app.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: storage.DB.DSN,
			},
			Files: Files{
				Driver:        storage.Files.Driver,
				BinaryDataDir: storage.Files.BinaryDataDir,
				Endpoint:      storage.Files.Endpoint,
				AccessKey:     storage.Files.AccessKey,
				SecretKey:     storage.Files.SecretKey,
				Bucket:        storage.Files.Bucket,
				Region:        storage.Files.Region,
				UseSSL:        storage.Files.UseSSL,
			},
			Sessions: Sessions{
				Driver:        storage.Sessions.Driver,
				RedisAddress:  storage.Sessions.RedisAddress,
				RedisPassword: storage.Sessions.RedisPassword,
				RedisDB:       storage.Sessions.RedisDB,
			},
		},
		Server: Server{
			HTTPAddress:    server.HTTPAddress,
			BasePath:       server.BasePath,
			RequestTimeout: time.Duration(server.RequestTimeout),
			MaxUploadSize:  server.MaxUploadSize,
			AllowedOrigins: server.AllowedOrigins,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
