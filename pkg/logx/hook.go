package logx

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	fileField  = "file"
	stackField = "error_stack"
)

// CallerHook 自动添加调用位置和错误堆栈信息的 Hook
type CallerHook struct {
	maxCallerDepth int
}

func NewCallerHook(maxDepth int) *CallerHook {
	return &CallerHook{maxCallerDepth: maxDepth}
}

// Levels 返回该 Hook 应用的日志级别
func (h *CallerHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.DebugLevel, logrus.InfoLevel, logrus.ErrorLevel}
}

// Fire 在日志输出前执行，添加调用位置和错误堆栈信息
func (h *CallerHook) Fire(entry *logrus.Entry) error {
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		if stack := h.getErrorStack(err); stack != "" {
			entry.Data[stackField] = stack
		}
	} else if call := h.getCaller(); call != "" {
		entry.Data[fileField] = call
	}

	return nil
}

// getCaller 获取调用日志的位置和调用栈
func (h *CallerHook) getCaller() string {
	pcs := make([]uintptr, h.maxCallerDepth+20)
	n := runtime.Callers(0, pcs)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var stack []string
	foundCaller := false

	for {
		frame, more := frames.Next()

		// 跳过日志库、运行时和框架内部的调用帧
		if strings.Contains(frame.File, "sirupsen/logrus") ||
			strings.Contains(frame.File, "/runtime/") ||
			strings.Contains(frame.File, "/multibody/") ||
			strings.Contains(frame.File, "gin-gonic/gin") ||
			strings.Contains(frame.File, "/golang.org/") {
			if !more {
				break
			}
			continue
		}

		// 第一个非框架代码的调用就是业务代码的位置
		if !foundCaller {
			if modulePath != "" && !strings.Contains(frame.File, modulePath) {
				if !more {
					break
				}
				continue
			}
			foundCaller = true
		}

		stack = append(stack, fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line))

		if len(stack) >= h.maxCallerDepth {
			break
		}
		if !more {
			break
		}
	}

	if len(stack) == 0 {
		return ""
	}

	return strings.Join(stack, " <- ")
}

// getErrorStack 提取错误的堆栈信息
func (h *CallerHook) getErrorStack(err error) string {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	if e, ok := err.(stackTracer); ok {
		stack := fmt.Sprintf("%+v", e.StackTrace())
		lines := strings.Split(stack, "\n")
		var newLines []string
		for _, line := range lines {
			if line == "" {
				continue
			}
			newLines = append(newLines, line)
		}
		return strings.Join(newLines, "\n")
	}

	return ""
}
