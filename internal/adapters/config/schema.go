package config

// File represents the structure of the capigrow.yaml configuration file.
type File struct {
	API     APIDTO     `yaml:"api"`
	Cache   CacheDTO   `yaml:"cache"`
	Retry   RetryDTO   `yaml:"retry"`
	Session SessionDTO `yaml:"session"`
	Log     LogDTO     `yaml:"log"`
}

// APIDTO configures the remote gateway.
type APIDTO struct {
	BaseURL   string  `yaml:"baseURL"`
	Timeout   string  `yaml:"timeout"`
	RateLimit float64 `yaml:"rateLimit"`
	RateBurst int     `yaml:"rateBurst"`
}

// CacheDTO configures the read cache.
type CacheDTO struct {
	StaleTime  string            `yaml:"staleTime"`
	StaleTimes map[string]string `yaml:"staleTimes"`
	GCTime     string            `yaml:"gcTime"`
}

// RetryDTO bounds read and write attempts.
type RetryDTO struct {
	Reads  int `yaml:"reads"`
	Writes int `yaml:"writes"`
}

// SessionDTO locates the persisted session.
type SessionDTO struct {
	Path string `yaml:"path"`
}

// LogDTO configures logging.
type LogDTO struct {
	Level string `yaml:"level"`
}

// envOverrides are applied on top of the file. Unset variables leave the file value alone.
type envOverrides struct {
	APIBaseURL     *string  `env:"API_URL"`
	RequestTimeout *string  `env:"REQUEST_TIMEOUT"`
	RateLimit      *float64 `env:"RATE_LIMIT"`
	RateBurst      *int     `env:"RATE_BURST"`
	ReadAttempts   *int     `env:"READ_ATTEMPTS"`
	WriteAttempts  *int     `env:"WRITE_ATTEMPTS"`
	StaleTime      *string  `env:"STALE_TIME"`
	GCTime         *string  `env:"GC_TIME"`
	SessionPath    *string  `env:"SESSION_PATH"`
	LogLevel       *string  `env:"LOG_LEVEL"`
}
