package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jimiland/blockhtml/pkg/page"
	"github.com/jimiland/blockhtml/pkg/render"
	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

type Config struct {
	Render RenderConfig `toml:"render"`
	Page   PageConfig   `toml:"page"`
	Log    LogConfig    `toml:"log"`
}

type RenderConfig struct {
	CalloutIcon       string `toml:"callout_icon"`
	YouTubeEmbedURL   string `toml:"youtube_embed_url"`
	VideoWidth        int    `toml:"video_width"`
	VideoHeight       int    `toml:"video_height"`
	VideoFallbackText string `toml:"video_fallback_text"`
}

type PageConfig struct {
	WordsPerMinute int    `toml:"words_per_minute"`
	DateFormat     string `toml:"date_format"`
	SlugStyle      string `toml:"slug_style"`
}

type LogConfig struct {
	Debug         bool     `toml:"debug"`
	DebugServices []string `toml:"debug_services"`
}

func GetDefaultConfig() *Config {
	opts := render.DefaultOptions()
	return &Config{
		Render: RenderConfig{
			CalloutIcon:       opts.CalloutIcon,
			YouTubeEmbedURL:   opts.YouTubeEmbedURL,
			VideoWidth:        opts.VideoWidth,
			VideoHeight:       opts.VideoHeight,
			VideoFallbackText: opts.VideoFallbackText,
		},
		Page: PageConfig{
			WordsPerMinute: page.DefaultWordsPerMinute,
			DateFormat:     page.DefaultDateLayout,
			SlugStyle:      string(page.SlugPathEscaped),
		},
	}
}

// LoadConfig reads the configuration at configPath. A missing file yields the
// defaults, and so does every key missing from an existing file.
func LoadConfig(configPath string) (*Config, error) {
	config := GetDefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// explicit zeros are as good as missing
	defaults := GetDefaultConfig()
	if config.Render.VideoWidth <= 0 {
		config.Render.VideoWidth = defaults.Render.VideoWidth
	}
	if config.Render.VideoHeight <= 0 {
		config.Render.VideoHeight = defaults.Render.VideoHeight
	}
	if config.Page.WordsPerMinute <= 0 {
		config.Page.WordsPerMinute = defaults.Page.WordsPerMinute
	}
	if config.Page.DateFormat == "" {
		config.Page.DateFormat = defaults.Page.DateFormat
	}
	style, err := page.ParseSlugStyle(config.Page.SlugStyle)
	if err != nil {
		return nil, fmt.Errorf("invalid [page] slug_style: %w", err)
	}
	config.Page.SlugStyle = string(style)

	return config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample configuration.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// RenderOptions maps the [render] section to renderer options.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		CalloutIcon:       c.Render.CalloutIcon,
		YouTubeEmbedURL:   c.Render.YouTubeEmbedURL,
		VideoWidth:        c.Render.VideoWidth,
		VideoHeight:       c.Render.VideoHeight,
		VideoFallbackText: c.Render.VideoFallbackText,
	}
}

// Builder returns a page builder rendering with service and using the [page]
// settings.
func (c *Config) Builder(service *render.Service) page.Builder {
	return page.Builder{
		Renderer:       service,
		WordsPerMinute: c.Page.WordsPerMinute,
		DateLayout:     c.Page.DateFormat,
		SlugStyle:      page.SlugStyle(c.Page.SlugStyle),
	}
}

// GetConfigDir returns the configuration directory for blockhtml
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "blockhtml"), nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
