package multibody

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Kind 标识目标形状的解码策略
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindChar
	KindString
	KindSlice
	KindMap
	KindStruct
)

// Char 字符类型。rune 本身是 int32 的别名，无法与整型参数区分，
// 声明字符参数时使用该类型。
type Char rune

var charType = reflect.TypeOf(Char(0))

// Shape 描述一个绑定目标的结构，注册时根据静态类型信息构造一次，
// 解码阶段不再做运行时类型判断
type Shape struct {
	Kind     Kind
	Type     reflect.Type // 去除指针后的目标类型
	Nullable bool         // 指针目标允许缺省
	Fields   []string     // 结构体目标声明的顶层 JSON 字段名
}

func ShapeOf(t reflect.Type) (*Shape, error) {
	if t == nil {
		return nil, errors.New("shape: nil type")
	}

	s := &Shape{}
	if t.Kind() == reflect.Ptr {
		s.Nullable = true
		t = t.Elem()
	}
	s.Type = t

	if t == charType {
		s.Kind = KindChar
		return s, nil
	}

	switch t.Kind() {
	case reflect.Int:
		s.Kind = KindInt
	case reflect.Int8:
		s.Kind = KindInt8
	case reflect.Int16:
		s.Kind = KindInt16
	case reflect.Int32:
		s.Kind = KindInt32
	case reflect.Int64:
		s.Kind = KindInt64
	case reflect.Uint:
		s.Kind = KindUint
	case reflect.Uint8:
		s.Kind = KindUint8
	case reflect.Uint16:
		s.Kind = KindUint16
	case reflect.Uint32:
		s.Kind = KindUint32
	case reflect.Uint64:
		s.Kind = KindUint64
	case reflect.Float32:
		s.Kind = KindFloat32
	case reflect.Float64:
		s.Kind = KindFloat64
	case reflect.Bool:
		s.Kind = KindBool
	case reflect.String:
		s.Kind = KindString
	case reflect.Slice, reflect.Array:
		s.Kind = KindSlice
	case reflect.Map:
		s.Kind = KindMap
	case reflect.Struct:
		s.Kind = KindStruct
		s.Fields = fieldNames(t)
	default:
		return nil, errors.Errorf("shape: unsupported target type %s", t.String())
	}

	return s, nil
}

// IsPrimitive 数值、布尔和字符形状走标量提取
func (s *Shape) IsPrimitive() bool {
	return s.Kind >= KindInt && s.Kind <= KindChar
}

func (s *Shape) IsCollection() bool {
	return s.Kind == KindSlice
}

// fieldNames 收集结构体目标的顶层 JSON 字段名，匿名嵌入结构体
// 按 encoding/json 的提升规则展开
func fieldNames(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		if field.Anonymous {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct && field.Tag.Get("json") == "" {
				names = append(names, fieldNames(embedded)...)
				continue
			}
		}

		name := jsonFieldName(field)
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag != "" {
		if idx := strings.Index(tag, ","); idx != -1 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag
		}
	}
	return field.Name
}
