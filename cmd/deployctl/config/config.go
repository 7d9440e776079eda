package config

import (
	"os"
	"path/filepath"

	"github.com/WB-TFS-SCADA1/deployAutomation/internal/logger"

	"github.com/joho/godotenv"
)

func init() {
	envFiles := []string{
		".env",
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("Error loading %s: %v", envFile, err)
			}
		}
	}
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)

	if value == "" {
		return defaultValue
	}

	return value
}

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("Could not determine home directory: %v", err)
		return ""
	}
	return homeDir
}

func getDefaultDatabasePath(fallback string, profile string) string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return fallback
	}
	return filepath.Join(homeDir, ".deployctl", profile, "deployctl.db")
}

func getDefaultEnvDir(fallback string) string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return fallback
	}
	return filepath.Join(homeDir, ".script_envs")
}

type Configuration struct {
	Profile      string
	DatabasePath string

	// Local directory holding <target>.env secrets files
	EnvDir string

	// Remote layout
	InstallPrefix    string
	RunnerScriptName string
	SecretsFileName  string
	LogsDirName      string

	// Files consumed from the cloned repository root
	EntryFileName        string
	RequirementsFileName string
	CronFileName         string

	// Remote toolchain
	PythonBin string

	RunnerScriptTemplatePath string
}

var Profile = GetEnv("DEPLOYCTL_PROFILE", "default")
var DatabasePath = GetEnv("DEPLOYCTL_DATABASE_PATH", getDefaultDatabasePath("/tmp/deployctl/deployctl.db", Profile))

var Config = &Configuration{
	Profile:      Profile,
	DatabasePath: DatabasePath,

	EnvDir: GetEnv("DEPLOYCTL_ENV_DIR", getDefaultEnvDir("/tmp/.script_envs")),

	InstallPrefix:    "/opt",
	RunnerScriptName: "run_script.sh",
	SecretsFileName:  ".env",
	LogsDirName:      "logs",

	EntryFileName:        "main.py",
	RequirementsFileName: "requirements.txt",
	CronFileName:         "cron.txt",

	PythonBin: GetEnv("DEPLOYCTL_PYTHON_BIN", "python3.12"),

	RunnerScriptTemplatePath: "scripts/runner.hbs",
}
