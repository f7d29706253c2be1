package multibody

import (
	"reflect"
	"strings"
)

const (
	optionOptional = "optional"
	optionNoFlat   = "noflat"
)

// Param 是单个参数的绑定描述符，注册时由字段标签构造一次，
// 请求期间不再变化。
//
// 标签约定：
//
//	Age  int             `body:"age"`            // 显式指定 JSON key
//	Name string          `body:""`               // 按参数名取 key
//	Memo *string         `body:",optional"`      // 缺失时返回 Absent
//	User UserForm        `body:""`               // 找不到 key 时整体回退解析
//	Tags []string        `body:",noflat"`        // 关闭整体回退
//
// required 与 parseAllFields 默认开启，与来源注解保持一致。
type Param struct {
	// 参数名，显式 key 为空时作为查找 key
	Name string
	// 显式指定的 JSON key
	Key string
	// 必填，缺省则解析失败
	Required bool
	// 找不到 key 时是否允许用整个请求体按字段名整体解析
	ParseAllFields bool
	// 透传给校验器的规则
	ValidateTag string
	// 目标形状
	Shape *Shape
	// 字段索引
	Index int
	// 紧随其后的错误收集字段索引，-1 表示未声明
	SinkIndex int
}

func parseParam(field reflect.StructField, index int) (Param, error) {
	param := Param{
		Index:          index,
		SinkIndex:      -1,
		Required:       true,
		ParseAllFields: true,
		ValidateTag:    field.Tag.Get("validate"),
	}

	tag := field.Tag.Get("body")
	parts := strings.Split(tag, ",")
	param.Key = strings.TrimSpace(parts[0])
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case optionOptional:
			param.Required = false
		case optionNoFlat:
			param.ParseAllFields = false
		}
	}

	param.Name = paramName(field)

	shape, err := ShapeOf(field.Type)
	if err != nil {
		return param, err
	}
	param.Shape = shape

	return param, nil
}

// paramName 取 name 标签，其次 json 标签，否则用首字母小写的字段名
func paramName(field reflect.StructField) string {
	name := field.Tag.Get("name")
	if name == "" {
		name = field.Tag.Get("json")
	}
	if name != "" {
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return lowerFirst(field.Name)
}

func lowerFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] + 32
	}
	return string(r)
}
