package logging

import (
	"fmt"
	"strings"
)

// GormWriter 把 gorm 日志输出桥接到 zerolog
type GormWriter struct{}

// Printf 实现 gorm logger.Writer
func (GormWriter) Printf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	Logger().Debug().Str("component", "gorm").Msg(msg)
}
