package config

// Config is the top-level blogrender configuration, corresponding to
// .blogrender.yml.
type Config struct {
	SiteName         string   `yaml:"site_name" koanf:"site_name"`
	SiteDir          string   `yaml:"site_dir" koanf:"site_dir"`
	IndexSource      string   `yaml:"index_source" koanf:"index_source"`
	FullSource       string   `yaml:"full_source" koanf:"full_source"`
	OutputDir        string   `yaml:"output_dir" koanf:"output_dir"`
	PageSize         int      `yaml:"page_size" koanf:"page_size"`
	ExcerptLength    int      `yaml:"excerpt_length" koanf:"excerpt_length"`
	CarouselSize     int      `yaml:"carousel_size" koanf:"carousel_size"`
	CarouselInterval string   `yaml:"carousel_interval" koanf:"carousel_interval"`
	RelatedCount     int      `yaml:"related_count" koanf:"related_count"`
	RecentCount      int      `yaml:"recent_count" koanf:"recent_count"`
	Port             int      `yaml:"port" koanf:"port"`
	AllowAllOrigins  bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Include          []string `yaml:"include" koanf:"include"`
	Exclude          []string `yaml:"exclude" koanf:"exclude"`
	MaxConcurrency   int      `yaml:"max_concurrency" koanf:"max_concurrency"`
}
