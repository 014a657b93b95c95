package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Redis struct {
		URL      string        `yaml:"url"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"redis"`

	Gmail struct {
		CredentialsFile string `yaml:"credentials_file"`
		TokenFile       string `yaml:"token_file"`
	} `yaml:"gmail"`

	Calendar struct {
		Enabled    bool   `yaml:"enabled"`
		CalendarID string `yaml:"calendar_id"`
	} `yaml:"calendar"`

	Scan struct {
		Query             string        `yaml:"query"`
		MaxMessages       int           `yaml:"max_messages"`
		PerMessageTimeout time.Duration `yaml:"per_message_timeout"`
		MinEmailYear      int           `yaml:"min_email_year"`
		FetchesPerSecond  float64       `yaml:"fetches_per_second"`
	} `yaml:"scan"`

	LLM struct {
		Provider  string        `yaml:"provider"`
		APIKey    string        `yaml:"api_key"`
		Model     string        `yaml:"model"`
		MaxTokens int           `yaml:"max_tokens"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second

	config.Database.Host = "localhost"
	config.Database.Port = 3306
	config.Database.User = "jobtrail"
	config.Database.Name = "jobtrail"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Gmail.CredentialsFile = "credentials.json"
	config.Gmail.TokenFile = "token.json"

	config.Calendar.Enabled = true
	config.Calendar.CalendarID = "primary"

	config.Scan.Query = "category:primary newer_than:90d"
	config.Scan.MaxMessages = 100
	config.Scan.PerMessageTimeout = 15 * time.Second
	config.Scan.MinEmailYear = 2023
	config.Scan.FetchesPerSecond = 5

	config.LLM.Provider = "heuristic"
	config.LLM.Model = "claude-3-haiku-20240307"
	config.LLM.MaxTokens = 1024
	config.LLM.Timeout = 30 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		c.Database.Host = dbHost
	}

	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		if p, err := strconv.Atoi(dbPort); err == nil {
			c.Database.Port = p
		}
	}

	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		c.Database.User = dbUser
	}

	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		c.Database.Password = dbPassword
	}

	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		c.Database.Name = dbName
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if credentials := os.Getenv("GMAIL_CREDENTIALS_FILE"); credentials != "" {
		c.Gmail.CredentialsFile = credentials
	}

	if token := os.Getenv("GMAIL_TOKEN_FILE"); token != "" {
		c.Gmail.TokenFile = token
	}

	if calendarEnabled := os.Getenv("CALENDAR_ENABLED"); calendarEnabled != "" {
		c.Calendar.Enabled = calendarEnabled == "true" || calendarEnabled == "1"
	}

	if calendarID := os.Getenv("CALENDAR_ID"); calendarID != "" {
		c.Calendar.CalendarID = calendarID
	}

	if query := os.Getenv("SCAN_QUERY"); query != "" {
		c.Scan.Query = query
	}

	if maxMessages := os.Getenv("SCAN_MAX_MESSAGES"); maxMessages != "" {
		if n, err := strconv.Atoi(maxMessages); err == nil {
			c.Scan.MaxMessages = n
		}
	}

	if timeout := os.Getenv("SCAN_PER_MESSAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Scan.PerMessageTimeout = d
		}
	}

	if minYear := os.Getenv("SCAN_MIN_EMAIL_YEAR"); minYear != "" {
		if y, err := strconv.Atoi(minYear); err == nil {
			c.Scan.MinEmailYear = y
		}
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}

// DSN builds the MySQL connection string for the configured database.
func (c *Config) DSN() string {
	return c.Database.User + ":" + c.Database.Password + "@tcp(" +
		c.Database.Host + ":" + strconv.Itoa(c.Database.Port) + ")/" +
		c.Database.Name + "?charset=utf8mb4&parseTime=True&loc=Local"
}
