package logx

import (
	"os"
	"path"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const Timestamp = "2006-01-02 15:04:05"

type Config struct {
	Label             string `yaml:"label" env:"LOG_LABEL"`
	LogFileName       string `yaml:"file_name" env:"LOG_FILE_NAME"`
	LogDirPath        string `yaml:"dir_path" env:"LOG_DIR_PATH"`
	LogLevel          string `yaml:"log_level" env:"LOG_LEVEL"`
	MaxSize           int    `yaml:"max_size"`
	MaxBackups        int    `yaml:"max_backups"`
	Compress          bool   `yaml:"log_compress"`
	DisableHTMLEscape bool   `yaml:"disable_html_escape"`
	DisableQuote      bool   `yaml:"disable_quote"`

	ToStdout bool `yaml:"to_stdout" env:"LOG_TO_STDOUT"`
	IsJson   bool `yaml:"is_json" env:"LOG_IS_JSON"`
}

func Load(c *Config) {
	if c.Label == "" {
		c.Label = defaultLogLabel
	}
	if c.LogDirPath == "" {
		c.ToStdout = true
	}
	logManager.Set(LogLabel(c.Label), load(c))
}

func load(c *Config) *logrus.Logger {
	logger := logrus.New()

	if c.IsJson {
		logger.SetFormatter(&logrus.JSONFormatter{
			DisableHTMLEscape: c.DisableHTMLEscape,
			TimestampFormat:   Timestamp,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:    true,
			DisableQuote:     c.DisableQuote,
			FullTimestamp:    true,
			QuoteEmptyFields: false,
			TimestampFormat:  Timestamp,
		})
	}

	if !c.ToStdout {
		if _, err := os.Stat(c.LogDirPath); os.IsNotExist(err) {
			if err := os.Mkdir(c.LogDirPath, 0755); err != nil {
				panic(err)
			}
		}

		logger.SetOutput(&lumberjack.Logger{
			Filename:   path.Join(c.LogDirPath, c.LogFileName),
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			Compress:   c.Compress,
		})
	} else {
		logger.SetOutput(os.Stdout)
	}

	setLogLevel(logger, c.LogLevel)

	logger.AddHook(NewCallerHook(1))

	return logger
}

func defaultConfig() *Config {
	return &Config{
		ToStdout: true,
		IsJson:   false,
		LogLevel: "info",
	}
}
