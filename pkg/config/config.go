//Package config loads the service configuration with viper: defaults, an optional
//yaml file, then FOOTSCOUT_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

//EnvPrefix prefixes every environment override, "http.port" is read from FOOTSCOUT_HTTP_PORT
const EnvPrefix = "FOOTSCOUT"

type HTTP struct {
	Port        string   `mapstructure:"port"`
	MaxUploadMB int64    `mapstructure:"max-upload-mb"`
	CORSOrigins []string `mapstructure:"cors-origins"`
	RateLimit   float64  `mapstructure:"rate-limit"` //requests per second per client
	RateBurst   int      `mapstructure:"rate-burst"`
}

type Directory struct {
	Temp string `mapstructure:"temp"` //staged uploads
}

type Model struct {
	Path      string `mapstructure:"path"`
	InputSize int    `mapstructure:"input-size"`
}

type Detection struct {
	WorkingWidth     int     `mapstructure:"working-width"`
	WorkingHeight    int     `mapstructure:"working-height"`
	PlayerConfidence float64 `mapstructure:"player-confidence"`
	BallConfidence   float64 `mapstructure:"ball-confidence"`
	NMSThreshold     float64 `mapstructure:"nms-threshold"`
	PersonClass      string  `mapstructure:"person-class"`
	BallClass        string  `mapstructure:"ball-class"`
}

type Validation struct {
	MinConfidence float64 `mapstructure:"min-confidence"`
}

type Tracker struct {
	MaxAge            int     `mapstructure:"max-age"`
	NInit             int     `mapstructure:"n-init"`
	MinIoU            float64 `mapstructure:"min-iou"`
	HighThreshold     float64 `mapstructure:"high-threshold"`
	LowThreshold      float64 `mapstructure:"low-threshold"`
	BallHighThreshold float64 `mapstructure:"ball-high-threshold"`
	BallLowThreshold  float64 `mapstructure:"ball-low-threshold"`
}

//Config is the whole configuration tree
type Config struct {
	HTTP       HTTP       `mapstructure:"http"`
	Directory  Directory  `mapstructure:"directory"`
	Model      Model      `mapstructure:"model"`
	Detection  Detection  `mapstructure:"detection"`
	Validation Validation `mapstructure:"validation"`
	Tracker    Tracker    `mapstructure:"tracker"`
}

//SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8000")
	v.SetDefault("http.max-upload-mb", 50)
	v.SetDefault("http.cors-origins", []string{"*"})
	v.SetDefault("http.rate-limit", 1.0)
	v.SetDefault("http.rate-burst", 5)

	v.SetDefault("directory.temp", "./tmp")

	v.SetDefault("model.path", "./models/yolov8n.onnx")
	v.SetDefault("model.input-size", 640)

	v.SetDefault("detection.working-width", 640)
	v.SetDefault("detection.working-height", 360)
	v.SetDefault("detection.player-confidence", 0.3)
	v.SetDefault("detection.ball-confidence", 0.1)
	v.SetDefault("detection.nms-threshold", 0.45)
	v.SetDefault("detection.person-class", "person")
	v.SetDefault("detection.ball-class", "sports ball")

	v.SetDefault("validation.min-confidence", 0.2)

	v.SetDefault("tracker.max-age", 30)
	v.SetDefault("tracker.n-init", 3)
	v.SetDefault("tracker.min-iou", 0.3)
	v.SetDefault("tracker.high-threshold", 0.5)
	v.SetDefault("tracker.low-threshold", 0.3)
	v.SetDefault("tracker.ball-high-threshold", 0.25)
	v.SetDefault("tracker.ball-low-threshold", 0.1)
}

//New creates a viper instance with defaults and environment overrides wired
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

//Load reads the config file at given path, or 'config.yaml' in the working directory when path is empty.
//A missing default file is not an error, defaults and environment still apply.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("Load: Could not read config file, got '%v'", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("Load: Could not decode config, got '%v'", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//Validate rejects configurations that can not serve a single request
func (c *Config) Validate() error {
	if c.HTTP.Port == "" || c.Directory.Temp == "" || c.Model.Path == "" {
		return errors.New("Validate: Missing critical configurations")
	}
	if c.HTTP.MaxUploadMB <= 0 {
		return fmt.Errorf("Validate: http.max-upload-mb must be positive, got '%d'", c.HTTP.MaxUploadMB)
	}
	if c.Detection.WorkingWidth < 0 || c.Detection.WorkingHeight < 0 {
		return fmt.Errorf("Validate: Negative working resolution %dx%d", c.Detection.WorkingWidth, c.Detection.WorkingHeight)
	}
	return nil
}

//MaxUploadBytes returns the upload limit in bytes
func (h HTTP) MaxUploadBytes() int64 {
	return h.MaxUploadMB << 20
}
