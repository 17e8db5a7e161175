package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON either as a
// duration string ("15m", "240h") or as a number of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for Duration.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("error parsing duration %q: %w", v, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration value")
	}
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration fields for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		AccessTokenSecret             string   `json:"access_token_secret"`
		RefreshTokenSecret            string   `json:"refresh_token_secret"`
		TokenIssuer                   string   `json:"token_issuer"`
		AccessTokenDuration           Duration `json:"access_token_duration"`
		RefreshTokenDuration          Duration `json:"refresh_token_duration"`
		BcryptCost                    int      `json:"bcrypt_cost"`
		RevokeSessionOnPasswordChange bool     `json:"revoke_session_on_password_change"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			TempUploadDir string `json:"temp_upload_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Media struct {
		UploadURL      string   `json:"upload_url"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"media,omitempty"`
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

	cfg := &StructuredConfig{
		App: App{
			AccessTokenSecret:             jsonCfg.App.AccessTokenSecret,
			RefreshTokenSecret:            jsonCfg.App.RefreshTokenSecret,
			TokenIssuer:                   jsonCfg.App.TokenIssuer,
			AccessTokenDuration:           time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration:          time.Duration(jsonCfg.App.RefreshTokenDuration),
			BcryptCost:                    jsonCfg.App.BcryptCost,
			RevokeSessionOnPasswordChange: jsonCfg.App.RevokeSessionOnPasswordChange,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				TempUploadDir: jsonCfg.Storage.Files.TempUploadDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Media: Media{
			UploadURL:      jsonCfg.Media.UploadURL,
			APIKey:         jsonCfg.Media.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Media.RequestTimeout),
		},
	}

	return cfg, nil
}
