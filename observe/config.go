package observe

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// LoadConfig parses a YAML or JSON document into a validated Config.
// Environment references ($VAR, ${VAR}) are expanded before parsing; "$$"
// escapes a literal dollar sign.
//
// Keys follow the koanf struct tags, for example:
//
//	service_name: checkout
//	tracing:
//	  enabled: true
//	  exporter: otlp
//	  sample_pct: 0.25
//	logging:
//	  enabled: true
//	  level: info
//	  output: /var/log/checkout/telemetry.log
func LoadConfig(data []byte, format string) (Config, error) {
	var parser koanf.Parser
	switch strings.ToLower(format) {
	case "yaml", "yml":
		parser = yaml.Parser()
	case "json":
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	doc, err := expandEnv(string(data))
	if err != nil {
		return Config{}, err
	}

	k := koanf.New(".")
	if len(doc) > 0 {
		if err := k.Load(rawbytes.Provider([]byte(doc)), parser); err != nil {
			return Config{}, fmt.Errorf("observe: parse config: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("observe: decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
