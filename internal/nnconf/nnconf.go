// Package nnconf reads the streamml site configuration.
//
// The configuration is optional: a missing config file simply yields the
// defaults for every key. It is read at most once per process, on first
// access.
package nnconf

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// Source provides read access to configuration values grouped in sections.
// It matches the shape of the pipeline engine's configuration files, where a
// key lives under a named section.
type Source interface {
	// GetBool returns the boolean value of section/key, or def when unset.
	GetBool(section, key string, def bool) bool

	// GetString returns the string value of section/key, or "" when unset.
	GetString(section, key string) string
}

// ConfDirEnv overrides the directories searched for the configuration file.
const ConfDirEnv = "STREAMML_CONF_DIR"

type viperSource struct {
	once sync.Once
	v    *viper.Viper
}

var std = &viperSource{}

// Default returns the process-wide configuration source, backed by the
// "streamml" config file in $STREAMML_CONF_DIR, /etc/streamml or
// $HOME/.streamml. Loaded lazily, once.
func Default() Source { return std }

func (s *viperSource) load() {
	v := viper.New()
	v.SetConfigName("streamml")
	if dir := os.Getenv(ConfDirEnv); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("/etc/streamml")
	v.AddConfigPath("$HOME/.streamml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			klog.Warningf("Failed to read the streamml configuration: %v", err)
		}
	}
	s.v = v
}

func (s *viperSource) GetBool(section, key string, def bool) bool {
	s.once.Do(s.load)
	k := section + "." + key
	if !s.v.IsSet(k) {
		return def
	}
	return s.v.GetBool(k)
}

func (s *viperSource) GetString(section, key string) string {
	s.once.Do(s.load)
	return s.v.GetString(section + "." + key)
}
