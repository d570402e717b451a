package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultConfig = `# Gurtle Configuration File

client:
  # User-Agent header sent with every request. Leave empty for the default.
  user_agent: ""
  # Skip TLS certificate verification. Needed for servers running on
  # self-signed development certificates.
  insecure: false

logging:
  access_log: access.log
  error_log: error.log

serve:
  port: 4878
  # Directory the development server serves files from.
  root: .
  # TLS certificate to present. Generated on demand when missing.
  cert_file: ""
  key_file: ""
  # Options: none, zstd, gzip, deflate
  encoding: none
  # Additional response headers.
  headers: {}
`

var config *Config
var configMap *map[string]interface{}

type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Logging LoggingConfig `yaml:"logging"`
	Serve   ServeConfig   `yaml:"serve"`
}

type ClientConfig struct {
	UserAgent string `yaml:"user_agent"`
	Insecure  bool   `yaml:"insecure"`
}

type LoggingConfig struct {
	AccessLog string `yaml:"access_log"`
	ErrorLog  string `yaml:"error_log"`
}

type ServeConfig struct {
	Port     int                `yaml:"port"`
	Root     string             `yaml:"root"`
	CertFile string             `yaml:"cert_file"`
	KeyFile  string             `yaml:"key_file"`
	Encoding string             `yaml:"encoding"`
	Headers  *map[string]string `yaml:"headers,omitempty"`
}

func CreateDefaultConfig() error {
	path := GetConfigPath()
	if _, err := os.Stat(GetDataDirectory()); os.IsNotExist(err) {
		err := os.MkdirAll(GetDataDirectory(), 0755)
		if err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
	}
	if _, err := os.Stat(path); err == nil {
		// Config file already exists, do nothing
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create default config file: %v", err)
	}
	defer f.Close()
	_, err = f.WriteString(DefaultConfig)
	if err != nil {
		return fmt.Errorf("failed to write default config file: %v", err)
	}

	var conf Config
	err = yaml.Unmarshal([]byte(DefaultConfig), &conf)
	if err != nil {
		return fmt.Errorf("failed to parse default config: %v", err)
	}

	return nil
}

func GetConfigPath() string {
	return GetDataDirectory() + string(os.PathSeparator) + "config.yaml"
}

func GetConfig() (Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err := CreateDefaultConfig()
			if err != nil {
				return Config{}, fmt.Errorf("failed to create default config file: %v", err)
			}
			return GetConfig()
		}
		return Config{}, fmt.Errorf("failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file into map: %v", err)
	}

	var confMap map[string]interface{}
	err = yaml.Unmarshal(data, &confMap)
	if err != nil {
		return *config, fmt.Errorf("failed to parse config file into map: %v", err)
	}
	configMap = &confMap

	return *config, nil
}

func GetConfigValue(key string, def interface{}) interface{} {
	if configMap == nil {
		conf, err := GetConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return def
		}
		config = &conf
		return def
	}
	if val, ok := (*configMap)[key]; ok {
		return val
	}
	if strings.Contains(key, ".") {
		parts := strings.Split(key, ".")
		curr := configMap
		for i, part := range parts {
			if v, ok := (*curr)[part]; ok {
				if i == len(parts)-1 {
					return v
				}
				if nextMap, ok := v.(map[string]interface{}); ok {
					curr = &nextMap
				} else {
					return def
				}
			} else {
				return def
			}
		}
	}
	return def
}
