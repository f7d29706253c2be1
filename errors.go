package multibody

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/shrewx/multibody/pkg/i18nx"
	"github.com/shrewx/multibody/pkg/statuserror"
)

// 错误码前三位为 HTTP 状态码
var (
	// ErrMalformedBody 请求体不是合法 JSON
	ErrMalformedBody = statuserror.NewStatusErr("MalformedBody", 40010101)
	// ErrMissingRequiredKey 必填参数在所有回退策略后仍然缺失
	ErrMissingRequiredKey = statuserror.NewStatusErr("MissingRequiredKey", 40010102)
	// ErrStructuralDecode 值存在但无法解码为声明的形状
	ErrStructuralDecode = statuserror.NewStatusErr("StructuralDecode", 40010103)
	// ErrValidationFailed 解码后的校验产生错误且没有收集参数兜底
	ErrValidationFailed = statuserror.NewStatusErr("ValidationFailed", 42210104)
	// ErrMissingParameterName 绑定元数据不完整，属于配置错误
	ErrMissingParameterName = statuserror.NewStatusErr("MissingParameterName", 50010105)
	// ErrInvalidBindTarget 目标类型无法解析为绑定描述符，属于配置错误
	ErrInvalidBindTarget = statuserror.NewStatusErr("InvalidBindTarget", 50010107)
	// ErrReadBodyFailed 读取请求输入流失败
	ErrReadBodyFailed = statuserror.NewStatusErr("ReadBodyFailed", 50010106)
	// ErrInternalServerError 兜底错误
	ErrInternalServerError = statuserror.NewStatusErr("InternalServerError", 50010100)
)

func init() {
	i18nx.AddMessages(I18nEN, []*i18n.Message{
		{ID: "en.MalformedBody", Other: "request body is not valid JSON"},
		{ID: "en.MissingRequiredKey", Other: "required param {{.Key}} is not present"},
		{ID: "en.StructuralDecode", Other: "param {{.Key}} can not be decoded into the declared type"},
		{ID: "en.ValidationFailed", Other: "param {{.Key}} validation failed"},
		{ID: "en.MissingParameterName", Other: "parameter name is not resolvable"},
		{ID: "en.InvalidBindTarget", Other: "bind target can not be resolved"},
		{ID: "en.ReadBodyFailed", Other: "read request body failed"},
		{ID: "en.InternalServerError", Other: "internal server error"},
	})
	i18nx.AddMessages(I18nZH, []*i18n.Message{
		{ID: "zh.MalformedBody", Other: "请求体不是合法的 JSON"},
		{ID: "zh.MissingRequiredKey", Other: "必填参数 {{.Key}} 不存在"},
		{ID: "zh.StructuralDecode", Other: "参数 {{.Key}} 无法解析为声明的类型"},
		{ID: "zh.ValidationFailed", Other: "参数 {{.Key}} 校验失败"},
		{ID: "zh.MissingParameterName", Other: "无法解析参数名称"},
		{ID: "zh.InvalidBindTarget", Other: "无法解析绑定目标类型"},
		{ID: "zh.ReadBodyFailed", Other: "读取请求体失败"},
		{ID: "zh.InternalServerError", Other: "服务内部错误"},
	})
}

func missingKeyError(key string) *statuserror.StatusErr {
	return ErrMissingRequiredKey.WithParams(map[string]interface{}{"Key": key})
}

func structuralDecodeError(key string, cause error) *statuserror.StatusErr {
	return ErrStructuralDecode.WithParams(map[string]interface{}{"Key": key}).WithCause(cause)
}
