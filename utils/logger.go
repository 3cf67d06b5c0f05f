package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// appField stamps every entry with the service name as an "app" field.
type appField string

func (a appField) Levels() []logrus.Level { return logrus.AllLevels }

func (a appField) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["app"]; !ok {
		entry.Data["app"] = string(a)
	}
	return nil
}

// InitLogger reads LOG_LEVEL (default info) and LOG_FORMAT (text or json).
func InitLogger(appName string) {
	Logger.SetOutput(os.Stdout)

	levelName := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		Logger.WithField("LOG_LEVEL", levelName).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Logger.ReplaceHooks(logrus.LevelHooks{})
	Logger.AddHook(appField(appName))
}
