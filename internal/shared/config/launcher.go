package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nemanja-m/gomr-hadoop/internal/options"
)

const (
	ConfigFlag    = "config"
	LogLevelFlag  = "log_level"
	LogFormatFlag = "log_format"
)

// LauncherConfig contains everything gomr-hadoop reads at startup.
type LauncherConfig struct {
	Logging LoggingConfig
	// Options holds every known option that was set plus any unknown ones
	// from the config file or the command line, which are forwarded.
	Options *options.Store
}

// BindFlags registers a flag for every known option along with the logging
// and config file flags.
func BindFlags(fs *pflag.FlagSet) {
	for _, def := range options.Definitions() {
		switch def.Kind {
		case options.KindBool:
			fs.Bool(def.Name, false, def.Description)
		case options.KindStringSlice:
			fs.StringSlice(def.Name, nil, def.Description)
		case options.KindStringArray:
			fs.StringArray(def.Name, nil, def.Description)
		default:
			fs.String(def.Name, cast.ToString(def.Default), def.Description)
		}
		if def.NoOptDefault != "" {
			fs.Lookup(def.Name).NoOptDefVal = def.NoOptDefault
		}
	}

	fs.String(ConfigFlag, "", "Path to a gomr-hadoop YAML config file")
	fs.String(LogLevelFlag, "", "Log level: debug, info, warn or error (default info)")
	fs.String(LogFormatFlag, "", "Log format: text or json (default text)")
}

// LoadLauncher resolves options from, in order of precedence, the parsed
// flags, GOMR_HADOOP_ environment variables, the config file and defaults.
// If configPath is empty, it looks for gomr-hadoop.yaml in the config/
// directory and the working directory. extras are unknown command line
// options and are added last.
func LoadLauncher(configPath string, flags *pflag.FlagSet, extras []options.Value) (*LauncherConfig, error) {
	v := viper.New()
	defs := options.Definitions()

	for _, def := range defs {
		if def.Default != nil {
			v.SetDefault(def.Name, def.Default)
		}
	}
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("gomr-hadoop")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("GOMR_HADOOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags, defs); err != nil {
			return nil, err
		}
	}

	store := options.NewStore(defs)
	for _, def := range defs {
		if !v.IsSet(def.Name) {
			continue
		}
		if def.Kind == options.KindBool {
			store.Set(def.Name, v.GetBool(def.Name))
		} else {
			store.Set(def.Name, v.Get(def.Name))
		}
	}
	for _, key := range fileOnlyKeys(v, defs) {
		store.Set(key, v.Get(key))
	}
	for _, extra := range extras {
		store.Set(extra.Name, extra.Value)
	}

	return &LauncherConfig{
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Options: store,
	}, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, defs []options.Definition) error {
	bindings := map[string]string{
		"logging.level":  LogLevelFlag,
		"logging.format": LogFormatFlag,
	}
	for _, def := range defs {
		bindings[def.Name] = def.Name
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}

// fileOnlyKeys returns config file keys that are not known options, sorted.
func fileOnlyKeys(v *viper.Viper, defs []options.Definition) []string {
	known := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		known[def.Name] = struct{}{}
	}

	var keys []string
	for _, key := range v.AllKeys() {
		if _, ok := known[key]; ok {
			continue
		}
		if key == ConfigFlag || strings.HasPrefix(key, "logging.") {
			continue
		}
		if !v.InConfig(key) {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
