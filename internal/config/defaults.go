package config

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	useTaskFile := true
	interactive := true
	return &Config{
		TasksFile:   "tasks.txt",
		OutputDir:   "output",
		UseTaskFile: &useTaskFile,
		Interactive: &interactive,
		Slides: SlidesConfig{
			CharsPerLine: 70,
			MaxLines:     4,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	// Author has no default; empty means "ask git".
	result.Author = loaded.Author

	if loaded.TasksFile != "" {
		result.TasksFile = loaded.TasksFile
	} else {
		result.TasksFile = defaults.TasksFile
	}

	if loaded.OutputDir != "" {
		result.OutputDir = loaded.OutputDir
	} else {
		result.OutputDir = defaults.OutputDir
	}

	// Pointers distinguish an explicit false from a missing key.
	if loaded.UseTaskFile != nil {
		result.UseTaskFile = loaded.UseTaskFile
	} else {
		result.UseTaskFile = defaults.UseTaskFile
	}

	if loaded.Interactive != nil {
		result.Interactive = loaded.Interactive
	} else {
		result.Interactive = defaults.Interactive
	}

	// Tracker linking is off unless configured.
	result.TrackerURL = loaded.TrackerURL

	result.Slides = mergeSlidesConfig(loaded.Slides, defaults.Slides)

	return result
}

func mergeSlidesConfig(loaded, defaults SlidesConfig) SlidesConfig {
	result := SlidesConfig{}

	if loaded.CharsPerLine != 0 {
		result.CharsPerLine = loaded.CharsPerLine
	} else {
		result.CharsPerLine = defaults.CharsPerLine
	}

	if loaded.MaxLines != 0 {
		result.MaxLines = loaded.MaxLines
	} else {
		result.MaxLines = defaults.MaxLines
	}

	return result
}
