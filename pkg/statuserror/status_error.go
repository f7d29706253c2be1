package statuserror

import (
	"fmt"
	"strconv"

	"github.com/shrewx/multibody/pkg/i18nx"
	"github.com/shrewx/multibody/pkg/logx"
)

type CommonError interface {
	Error() string
	Code() int64
	StatusCode() int

	Localize(manager *i18nx.Localize, lang string) CommonError
	Value() string
}

type StatusErr struct {
	// 错误名称
	Key string `json:"key"`
	// 状态码
	ErrorCode int64 `json:"code"`
	// 消息
	Message string `json:"message"`
	// 错误参数
	Params map[string]interface{} `json:"-"`
	// 错误列表
	ErrList []map[string]interface{} `json:"errors,omitempty"`

	cause error
}

func NewStatusErr(key string, code int64) *StatusErr {
	return &StatusErr{
		Key:       key,
		ErrorCode: code,
		Params:    make(map[string]interface{}),
	}
}

func (v *StatusErr) Error() string {
	if v.cause != nil {
		return fmt.Sprintf("[%s][%d] %s", v.Key, v.Code(), v.cause.Error())
	}
	return fmt.Sprintf("[%s][%d]", v.Key, v.Code())
}

func (v *StatusErr) Code() int64 {
	return v.ErrorCode
}

func (v *StatusErr) StatusCode() int {
	return StatusCodeFromCode(v.ErrorCode)
}

func (v *StatusErr) Value() string {
	return v.Message
}

// Is 按错误名称匹配，支持 errors.Is 对派生实例的比较
func (v *StatusErr) Is(err error) bool {
	e, ok := err.(*StatusErr)
	return ok && e.Key == v.Key
}

func (v *StatusErr) Unwrap() error {
	return v.cause
}

func (v *StatusErr) clone() *StatusErr {
	params := make(map[string]interface{}, len(v.Params))
	for k, value := range v.Params {
		params[k] = value
	}
	return &StatusErr{
		Key:       v.Key,
		ErrorCode: v.ErrorCode,
		Message:   v.Message,
		Params:    params,
		ErrList:   v.ErrList,
		cause:     v.cause,
	}
}

// WithParams 返回携带模板参数的派生实例，预定义错误本身保持不变
func (v *StatusErr) WithParams(params map[string]interface{}) *StatusErr {
	e := v.clone()
	for k, value := range params {
		e.Params[k] = value
	}
	return e
}

func (v *StatusErr) WithCause(cause error) *StatusErr {
	e := v.clone()
	e.cause = cause
	return e
}

func (v *StatusErr) WithErrList(list []map[string]interface{}) *StatusErr {
	e := v.clone()
	e.ErrList = list
	return e
}

// Localize 返回携带本地化消息的派生实例，预定义错误本身保持不变，
// 并发请求各自拿到独立的副本
func (v *StatusErr) Localize(manager *i18nx.Localize, lang string) CommonError {
	if v.Message != "" {
		return v
	}

	e := v.clone()
	message, err := manager.LocalizeData(lang, e.Key, e.Params)
	if err != nil {
		logx.Errorf("localize error message fail, err:%s", err.Error())
		e.Message = e.Key
		return e
	}
	e.Message = message

	return e
}

func StatusCodeFromCode(code int64) int {
	strCode := fmt.Sprintf("%d", code)
	if len(strCode) < 3 {
		return 0
	}
	statusCode, _ := strconv.Atoi(strCode[:3])
	return statusCode
}
