package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Site struct {
		Origin       string `yaml:"origin"`        // scheme+host, no trailing slash
		FindPath     string `yaml:"find_path"`     // search path, ends in "find.html?"
		UserAgent    string `yaml:"user_agent"`
		OutcodesFile string `yaml:"outcodes_file"` // outcode -> location code table
	} `yaml:"site"`

	Crawl struct {
		Workers        int     `yaml:"workers"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          int     `yaml:"burst"`
	} `yaml:"crawl"`

	Search struct {
		DefaultOutcode string   `yaml:"default_outcode"`
		Outcode        string   `yaml:"outcode"`
		Radius         float64  `yaml:"radius"`
		Types          []string `yaml:"types"`
		MaxPrice       int      `yaml:"max_price"`
		MinBedrooms    int      `yaml:"min_bedrooms"`
		Exclusions     []string `yaml:"exclusions"`
		Inclusions     []string `yaml:"inclusions"`
		IncludeSSTC    bool     `yaml:"include_sstc"`
		MaxDays        int      `yaml:"max_days"`
	} `yaml:"search"`

	Output struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"output"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// FindURL is the base search URL fragments get appended to.
func (c Config) FindURL() string {
	return c.Site.Origin + c.Site.FindPath
}
