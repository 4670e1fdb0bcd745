package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// A value is applied when the source file set its key, so an explicit
// "readTimeout: 0" overrides the default. Without SetFields (a config built
// in code) only non-zero values are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeField(target, source, "host", sourceType, &target.Host, source.Host)
	mergeField(target, source, "port", sourceType, &target.Port, source.Port)
	mergeField(target, source, "metricsPort", sourceType, &target.MetricsPort, source.MetricsPort)
	mergeField(target, source, "readTimeout", sourceType, &target.ReadTimeout, source.ReadTimeout)
	mergeField(target, source, "writeTimeout", sourceType, &target.WriteTimeout, source.WriteTimeout)
	mergeField(target, source, "shutdownTimeout", sourceType, &target.ShutdownTimeout, source.ShutdownTimeout)
	mergeField(target, source, "logLevel", sourceType, &target.LogLevel, source.LogLevel)
	mergeField(target, source, "logFormat", sourceType, &target.LogFormat, source.LogFormat)
	mergeField(target, source, "seed", sourceType, &target.Seed, source.Seed)
}

func mergeField[T comparable](target, source *CLIConfig, yamlKey, sourceType string, dst *T, v T) {
	if !isSet(source, yamlKey, v) {
		return
	}
	*dst = v
	target.Sources[yamlKey] = sourceType
}

// isSet reports whether the field identified by its YAML key was explicitly
// set in the source config.
func isSet[T comparable](cfg *CLIConfig, yamlKey string, v T) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	var zero T
	return v != zero
}
