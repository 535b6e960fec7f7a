package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory when no path is given.
const DotEnvFile = ".env"

// LoadDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set keep their value, and a
// missing file is skipped.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DotEnvFile
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// LoadConfig builds the AppConfig from defaults, the optional .env file and
// the environment, in increasing precedence.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, err
	}

	env, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, fmt.Errorf("environment: %w", err)
	}
	return env.ToAppConfig(), nil
}
