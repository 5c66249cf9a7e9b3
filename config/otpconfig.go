package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kinds of engine-side JSON config files. OTP reads each from the router
// directory under the file name <kind>-config.json.
const (
	BuildConfig  = "build"
	RouterConfig = "router"
	OTPConfig    = "otp"
)

// knownOTPKeys maps each config kind to its recognised keys and the JSON type
// the engine expects for them. The build vocabulary is the OTP 1.x one: 2.x
// validates build-config itself at startup and logs unknown keys, so this
// pre-flight check matters most for 1.x graphs, whose engine ignores typos
// silently.
var knownOTPKeys = map[string]map[string]string{
	BuildConfig: {
		"htmlAnnotations":         "bool",
		"transit":                 "bool",
		"useTransfersTxt":         "bool",
		"parentStopLinking":       "bool",
		"stationTransfers":        "bool",
		"stopClusterMode":         "string",
		"subwayAccessTime":        "number",
		"streets":                 "bool",
		"embedRouterConfig":       "bool",
		"areaVisibility":          "bool",
		"matchBusRoutesToStreets": "bool",
		"fetchElevationUS":        "bool",
		"staticBikeRental":        "bool",
		"staticParkAndRide":       "bool",
		"maxTransferDistance":     "number",
		"osmWayPropertySet":       "string",
		"banDiscouragedWalking":   "bool",
		"banDiscouragedBiking":    "bool",
	},
	RouterConfig: {
		"routingDefaults": "object",
		"timeout":         "number",
		"timeouts":        "array",
		"requestLogFile":  "string",
		"boardTimes":      "object",
		"alightTimes":     "object",
		"updaters":        "array",
	},
	OTPConfig: {
		"otpFeatures": "object",
	},
}

// MakeConfig returns a default config map for the given kind. The defaults
// match what the engine assumes when the file is absent, so writing the map
// unchanged is a no-op for routing behaviour.
func MakeConfig(kind string) (map[string]any, error) {
	switch kind {
	case BuildConfig:
		return map[string]any{
			"htmlAnnotations":   false,
			"transit":           true,
			"streets":           true,
			"embedRouterConfig": true,
			"subwayAccessTime":  2.0,
			"stopClusterMode":   "proximity",
		}, nil
	case RouterConfig:
		return map[string]any{
			"routingDefaults": map[string]any{},
			"timeout":         5.0,
			"updaters":        []any{},
		}, nil
	case OTPConfig:
		return map[string]any{
			"otpFeatures": map[string]any{
				"SandboxAPIMapboxVectorTilesApi": false,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown config kind %q", kind)
	}
}

// ValidateConfig checks a config map against the known keys for its kind.
// Unknown keys and wrongly-typed values are all reported in one error.
func ValidateConfig(kind string, cfg map[string]any) error {
	known, ok := knownOTPKeys[kind]
	if !ok {
		return fmt.Errorf("unknown config kind %q", kind)
	}
	var problems []string
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		want, ok := known[k]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown key %q", k))
			continue
		}
		if cfg[k] == nil {
			continue
		}
		if got := jsonTypeOf(cfg[k]); got != want {
			problems = append(problems, fmt.Sprintf("key %q: expected %s, got %s", k, want, got))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s-config: %s", kind, strings.Join(problems, "; "))
	}
	return nil
}

// WriteConfig validates and writes a config map to <dir>/<kind>-config.json.
func WriteConfig(kind string, cfg map[string]any, dir string) error {
	if err := ValidateConfig(kind, cfg); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, kind+"-config.json")
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func jsonTypeOf(v any) string {
	switch v.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	case float64, float32, int, int64, json.Number:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
