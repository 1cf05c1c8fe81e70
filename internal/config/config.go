package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is read when no --config flag is given. A missing file is not
// an error.
const DefaultPath = "diner.yml"

const envPrefix = "DINER_"

type Config struct {
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	Log         LogConfig         `yaml:"log" koanf:"log"`
	Catalog     CatalogConfig     `yaml:"catalog" koanf:"catalog"`
	Assets      AssetsConfig      `yaml:"assets" koanf:"assets"`
	Site        SiteConfig        `yaml:"site" koanf:"site"`
	Carousel    CarouselConfig    `yaml:"carousel" koanf:"carousel"`
	Reservation ReservationConfig `yaml:"reservation" koanf:"reservation"`
}

type ServerConfig struct {
	ListenAddr  string   `yaml:"listen_addr" koanf:"listen_addr"`
	CORSOrigins []string `yaml:"cors_origins" koanf:"cors_origins"`
}

type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	File  string `yaml:"file" koanf:"file"`
}

type CatalogConfig struct {
	// Source is one of embedded, file or sqlite.
	Source string `yaml:"source" koanf:"source"`
	Path   string `yaml:"path" koanf:"path"`
	DBPath string `yaml:"db_path" koanf:"db_path"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir" koanf:"dir"`
}

type SiteConfig struct {
	DefaultCategory string  `yaml:"default_category" koanf:"default_category"`
	ShowStaff       bool    `yaml:"show_staff" koanf:"show_staff"`
	NavThreshold    float64 `yaml:"nav_threshold" koanf:"nav_threshold"`
	NavHeaderOffset float64 `yaml:"nav_header_offset" koanf:"nav_header_offset"`
	BackdropDismiss bool    `yaml:"backdrop_dismiss" koanf:"backdrop_dismiss"`
	// Menu fade durations; both zero swaps categories immediately.
	MenuFadeOut time.Duration `yaml:"menu_fade_out" koanf:"menu_fade_out"`
	MenuFadeIn  time.Duration `yaml:"menu_fade_in" koanf:"menu_fade_in"`
}

type CarouselConfig struct {
	Warmup time.Duration `yaml:"warmup" koanf:"warmup"`
	Tick   time.Duration `yaml:"tick" koanf:"tick"`
	Step   float64       `yaml:"step" koanf:"step"`
}

type ReservationConfig struct {
	FadeIn  time.Duration `yaml:"fade_in" koanf:"fade_in"`
	FadeOut time.Duration `yaml:"fade_out" koanf:"fade_out"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{ListenAddr: ":8080"},
		Log:    LogConfig{Level: "info"},
		Catalog: CatalogConfig{
			Source: "embedded",
			DBPath: "diner.db",
		},
		Assets: AssetsConfig{Dir: "public/images"},
		Site: SiteConfig{
			DefaultCategory: "burgers",
			ShowStaff:       true,
			NavThreshold:    200,
		},
		Carousel: CarouselConfig{
			Warmup: 2 * time.Second,
			Tick:   30 * time.Millisecond,
			Step:   1,
		},
		Reservation: ReservationConfig{
			FadeIn:  10 * time.Millisecond,
			FadeOut: 300 * time.Millisecond,
		},
	}
}

// Load layers configuration: defaults, then the YAML file at path, then .env
// and DINER_* environment variables. Nested keys use a double underscore,
// e.g. DINER_SERVER__LISTEN_ADDR.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Variables already set in the environment win over .env.
	_ = godotenv.Load()

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "server.cors_origins" {
		var origins []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return key, origins
	}
	return key, value
}

var validSources = map[string]bool{
	"embedded": true,
	"file":     true,
	"sqlite":   true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if !validSources[c.Catalog.Source] {
		return fmt.Errorf("invalid catalog.source %q: must be one of embedded, file, sqlite", c.Catalog.Source)
	}
	if c.Catalog.Source == "file" && c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required when catalog.source is file")
	}
	if c.Catalog.Source == "sqlite" && c.Catalog.DBPath == "" {
		return fmt.Errorf("catalog.db_path is required when catalog.source is sqlite")
	}
	if c.Site.NavThreshold <= 0 {
		return fmt.Errorf("site.nav_threshold must be positive")
	}
	if c.Site.NavHeaderOffset < 0 {
		return fmt.Errorf("site.nav_header_offset must be non-negative")
	}
	if c.Site.MenuFadeOut < 0 || c.Site.MenuFadeIn < 0 {
		return fmt.Errorf("site.menu_fade_out and site.menu_fade_in must be non-negative")
	}
	if c.Carousel.Warmup < 0 {
		return fmt.Errorf("carousel.warmup must be non-negative")
	}
	if c.Carousel.Tick <= 0 || c.Carousel.Step <= 0 {
		return fmt.Errorf("carousel.tick and carousel.step must be positive")
	}
	if c.Reservation.FadeIn < 0 || c.Reservation.FadeOut < 0 {
		return fmt.Errorf("reservation fade durations must be non-negative")
	}
	return nil
}
