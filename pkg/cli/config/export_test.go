package config

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewStorageForTest creates a Storage config for the given backend
func NewStorageForTest(backend, dir, sqlitePath string) *Storage {
	return &Storage{
		backend:    backend,
		dir:        dir,
		sqlitePath: sqlitePath,
	}
}

// NewLoggerForTest creates a Logger config writing to output
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewAppForTest creates an App config reading path
func NewAppForTest(path string) *App {
	return &App{path: path}
}
