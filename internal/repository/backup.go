package repository

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Backup copies the entire database file to destPath. Failures are logged
// with their cause and reported as false; this never panics, since a
// missed backup should not take the application down.
func Backup(dbPath, destPath string, logger *logrus.Logger) bool {
	src, err := os.Open(dbPath)
	if err != nil {
		logger.WithError(err).WithField("path", dbPath).Error("Backup failed: cannot open database file")
		return false
	}
	defer src.Close()

	if dir := filepath.Dir(destPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WithError(err).WithField("dir", dir).Error("Backup failed: cannot create destination directory")
			return false
		}
	}

	dst, err := os.Create(destPath)
	if err != nil {
		logger.WithError(err).WithField("path", destPath).Error("Backup failed: cannot create destination file")
		return false
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		logger.WithError(err).WithField("path", destPath).Error("Backup failed: copy error")
		return false
	}
	if err := dst.Sync(); err != nil {
		logger.WithError(err).WithField("path", destPath).Error("Backup failed: sync error")
		return false
	}

	logger.WithFields(logrus.Fields{
		"source":      dbPath,
		"destination": destPath,
	}).Info("Database backed up")

	return true
}
