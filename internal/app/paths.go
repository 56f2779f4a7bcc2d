package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "rexos"
	dbFileName     = "rexos.db"
	configFileName = "config.yaml"
	backupDirName  = "backups"
	reportDirName  = "reports"
)

func appDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// BackupDir sits next to the database so a custom --db keeps its own backups.
func BackupDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), backupDirName)
}

func DefaultReportDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), reportDirName)
}

func EnsureDBDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}

func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
