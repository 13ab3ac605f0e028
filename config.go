package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Rules are loaded once at
// startup and treated as immutable for the process lifetime.
type Config struct {
	Port          string
	LogLevel      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisChannel  string
	SlackBotToken string
	WebhookSecret string
	Debug         bool
	Rules         []Rule
}

// YAMLConfig is the structure of the YAML config file.
type YAMLConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
		Channel string `yaml:"channel"`
	} `yaml:"redis"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Rules []Rule `yaml:"rules"`
}

// loadConfig reads the YAML config file and applies environment overrides.
// Env vars win over YAML values, YAML over built-in defaults. Secrets come
// from the environment only.
func loadConfig(path string) Config {
	yamlConfig := loadYAMLConfig(path)

	config := Config{
		Port:          getEnvOrDefault("HUBHOOK_PORT", yamlConfig.Server.Port, "8080"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", yamlConfig.Logging.Level, "INFO"),
		RedisHost:     getEnvOrDefault("REDIS_HOST", yamlConfig.Redis.Host, ""),
		RedisPort:     getEnvOrDefault("REDIS_PORT", yamlConfig.Redis.Port, "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisChannel:  getEnvOrDefault("REDIS_CHANNEL", yamlConfig.Redis.Channel, "github-events"),
		SlackBotToken: getEnv("SLACK_BOT_TOKEN", ""),
		WebhookSecret: getEnv("GITHUB_WEBHOOK_SECRET", ""),
		Debug:         getEnv("HUBHOOK_DEBUG", "") != "",
		Rules:         yamlConfig.Rules,
	}

	if config.SlackBotToken == "" {
		logger.Fatal("SLACK_BOT_TOKEN environment variable is required")
	}

	if config.WebhookSecret == "" && !config.Debug {
		logger.Fatal("GITHUB_WEBHOOK_SECRET environment variable is required")
	}

	if len(config.Rules) == 0 {
		logger.Warn("no rules configured, no event will be routed")
	}

	logger.Info("Configuration loaded: port=%s, rules=%d, redis=%s",
		config.Port, len(config.Rules), config.RedisHost)

	return config
}

func loadYAMLConfig(path string) YAMLConfig {
	var yamlConfig YAMLConfig

	data, err := os.ReadFile(path)
	if err != nil {
		// The rule list lives in the config file; running without one is
		// almost certainly a deployment mistake.
		logger.Fatal("could not read config file %s: %v", path, err)
		return yamlConfig
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		logger.Fatal("could not parse config file %s: %v", path, err)
		return yamlConfig
	}

	logger.Info("Loaded configuration from %s", path)
	return yamlConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefault(key, yamlValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if yamlValue != "" {
		return yamlValue
	}
	return defaultValue
}
