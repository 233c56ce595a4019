package props

import (
	"context"
	"errors"
	"fmt"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const (
	ConfigFileKey   = "DOMAINATRIX_CONFIG"
	endpointKey     = "DOMAINATRIX_OVERRIDE"
	timeoutKey      = "DOMAINATRIX_TIMEOUT"
	logFileKey      = "DOMAINATRIX_LOG_FILE"
	DefaultEndpoint = "https://domainatrix.me"
)

type ClientProperties struct {
	Endpoint string        `env:"DOMAINATRIX_OVERRIDE, default=https://domainatrix.me"`
	Timeout  time.Duration `env:"DOMAINATRIX_TIMEOUT, default=15s"`
	LogFile  string        `env:"DOMAINATRIX_LOG_FILE"`
}

// LogPath is where logs go while the terminal UI owns the screen.
func (p ClientProperties) LogPath() (string, error) {
	if p.LogFile != "" {
		return p.LogFile, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "domainatrix", "domainatrix.log"), nil
}

type ServerProperties struct {
	Port         int           `env:"PORT, default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=5s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=5m"`
	FixtureFile  string        `env:"FIXTURE_FILE, default=fixture.yaml"`
}

func NewServerProperties() ServerProperties {
	ctx := context.Background()

	var props ServerProperties
	if err := envconfig.Process(ctx, &props); err != nil {
		log.Fatal(err)
	}

	return props
}

func NewClientProperties() ClientProperties {
	props, err := LoadClientProperties(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Fatal(err)
	}

	return props
}

// LoadClientProperties resolves the client settings once. Values from env win over
// the YAML file named by DOMAINATRIX_CONFIG, which wins over the defaults.
func LoadClientProperties(ctx context.Context, env envconfig.Lookuper) (ClientProperties, error) {
	lookuper := env
	if path, ok := env.Lookup(ConfigFileKey); ok && path != "" {
		fileValues, err := readConfigFile(path)
		if err != nil {
			return ClientProperties{}, err
		}
		lookuper = envconfig.MultiLookuper(env, envconfig.MapLookuper(fileValues))
	}

	var props ClientProperties
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &props,
		Lookuper: lookuper,
	}); err != nil {
		return ClientProperties{}, err
	}

	if err := props.validate(); err != nil {
		return ClientProperties{}, err
	}
	return props, nil
}

func (p ClientProperties) validate() error {
	endpoint, err := url.Parse(p.Endpoint)
	if err != nil {
		return fmt.Errorf("%s: %w", endpointKey, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https, got %q", endpointKey, endpoint.Scheme)
	}
	if endpoint.Host == "" {
		return fmt.Errorf("%s: missing host in %q", endpointKey, p.Endpoint)
	}
	if p.Timeout <= 0 {
		return errors.New(timeoutKey + ": must be greater than zero")
	}
	return nil
}

type fileProperties struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
	LogFile  string `yaml:"log_file"`
}

func readConfigFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var file fileProperties
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	values := make(map[string]string, 3)
	if file.Endpoint != "" {
		values[endpointKey] = file.Endpoint
	}
	if file.Timeout != "" {
		values[timeoutKey] = file.Timeout
	}
	if file.LogFile != "" {
		values[logFileKey] = file.LogFile
	}
	return values, nil
}
