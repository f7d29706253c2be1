package logx

import (
	"github.com/sirupsen/logrus"
)

func Debug(args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Debugln(args[1:])
		default:
			Instance().Debugln(args...)
		}
	}
}

func Info(args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Infoln(args[1:])
		default:
			Instance().Infoln(args...)
		}
	}
}

func Warn(args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Warnln(args[1:])
		default:
			Instance().Warnln(args...)
		}
	}
}

func Error(args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Errorln(args[1:])
		default:
			Instance().Errorln(args...)
		}
	}
}

func Debugf(format string, args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Debugf(format, args[1:])
		default:
			Instance().Debugf(format, args...)
		}
	} else {
		Instance().Debugf("%s", format)
	}
}

func Infof(format string, args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Infof(format, args[1:])
		default:
			Instance().Infof(format, args...)
		}
	} else {
		Instance().Infof("%s", format)
	}
}

func Warnf(format string, args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Warnf(format, args[1:])
		default:
			Instance().Warnf(format, args...)
		}
	} else {
		Instance().Warnf("%s", format)
	}
}

func Errorf(format string, args ...interface{}) {
	if len(args) > 0 {
		switch t := args[0].(type) {
		case LogLabel:
			Label(t).Errorf(format, args[1:])
		default:
			Instance().Errorf(format, args...)
		}
	} else {
		Instance().Errorf("%s", format)
	}
}

func WithError(err error) *logrus.Entry {
	return Instance().WithField(logrus.ErrorKey, err)
}

func WithFields(fields logrus.Fields, labels ...LogLabel) *logrus.Entry {
	if len(labels) == 0 {
		return Instance().WithFields(fields)
	}
	return Label(labels[0]).WithFields(fields)
}
