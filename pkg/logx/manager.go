package logx

import (
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultLogLabel = "default"

var modulePath string

type LogLabel string

type LogManager struct {
	logs map[LogLabel]*logrus.Logger
}

var logManager = &LogManager{logs: make(map[LogLabel]*logrus.Logger)}

func (m *LogManager) Load(label LogLabel) *logrus.Logger {
	if info, ok := debug.ReadBuildInfo(); ok {
		modulePath = info.Main.Path
	}

	if logger, ok := m.logs[label]; ok {
		return logger
	}
	return m.logs[defaultLogLabel]
}

func (m *LogManager) Set(label LogLabel, logger *logrus.Logger) {
	label = LogLabel(strings.ToLower(string(label)))
	if _, ok := m.logs[label]; !ok {
		m.logs[label] = logger
	}
}

func Instance() *logrus.Logger {
	logger := logManager.Load(defaultLogLabel)
	if logger == nil {
		logger = load(defaultConfig())
		logManager.Set(defaultLogLabel, logger)
	}
	return logger
}

func Label(label LogLabel) *logrus.Logger {
	if logger := logManager.Load(label); logger != nil {
		return logger
	}
	return Instance()
}

func SetLogLevel(logLevel string, labels ...LogLabel) {
	if len(labels) == 0 {
		setLogLevel(Instance(), logLevel)
	} else {
		for _, label := range labels {
			setLogLevel(Label(label), logLevel)
		}
	}
}

func setLogLevel(logger *logrus.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logger.SetLevel(logrus.FatalLevel)
	case "panic":
		logger.SetLevel(logrus.PanicLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}
