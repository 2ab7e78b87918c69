// Package validation 为 gin 的绑定校验器注册业务校验规则：
//
//	notblank      字符串去掉空白后非空
//	nowhitespace  字符串不含空白字符（登录名）
//	notfuture     YYYY-MM-DD 日期不晚于今天
//	notbefore     YYYY-MM-DD 日期不早于参数给定的日期
//	releasedate   YYYY-MM-DD 日期不早于 constants.MinReleaseDate
package validation

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"filmorate/internal/constants"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// now 测试时可替换
var now = time.Now

// Register 把自定义规则注册到 gin 的默认校验器，可重复调用
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("gin 校验器类型不支持: %T", binding.Validator.Engine())
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn 把自定义规则注册到指定校验器
func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"notblank":     notBlank,
		"nowhitespace": noWhitespace,
		"notfuture":    notFuture,
		"notbefore":    notBefore,
		"releasedate":  releaseDate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func noWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

func notFuture(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return false
	}
	today := now().UTC().Format(constants.DateLayout)
	return d.Format(constants.DateLayout) <= today
}

func notBefore(fl validator.FieldLevel) bool {
	floor, err := time.Parse(constants.DateLayout, fl.Param())
	if err != nil {
		return false
	}
	return onOrAfter(fl.Field().String(), floor)
}

func releaseDate(fl validator.FieldLevel) bool {
	return onOrAfter(fl.Field().String(), constants.MinReleaseDate)
}

func onOrAfter(s string, floor time.Time) bool {
	if s == "" {
		return true
	}
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return false
	}
	return !d.Before(floor)
}

// ParseDate 解析 YYYY-MM-DD，空字符串返回 nil
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: 日期格式应为 YYYY-MM-DD: %q", constants.ErrValidation, s)
	}
	return &d, nil
}

// FormatDate 格式化为 YYYY-MM-DD，nil 返回空字符串
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constants.DateLayout)
}
