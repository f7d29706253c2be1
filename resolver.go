package multibody

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shrewx/multibody/internal/bodycache"
	"github.com/shrewx/multibody/internal/decode"
	"github.com/spf13/cast"
)

// Resolve 从共享的 JSON 请求体中解析单个参数。
//
// 查找 key 优先取显式指定的 key，否则用参数名。命中时按目标形状解码，
// 不再考虑 required 和 parseAllFields；未命中时只有结构体和 map 参数
// 允许用整个请求体按字段名整体解析（不带包装 key 的扁平写法），
// 其余形状要么失败要么返回 Absent。
func Resolve(ctx *gin.Context, param *Param) (BoundValue, error) {
	if param.Key == "" && param.Name == "" {
		return BoundValue{}, ErrMissingParameterName
	}

	body, err := bodycache.Load(ctx)
	if err != nil {
		return BoundValue{}, ErrReadBodyFailed.WithCause(err)
	}

	root, err := parseTree(body)
	if err != nil {
		return BoundValue{}, ErrMalformedBody.WithCause(err)
	}

	key := param.Key
	if key != "" {
		if _, ok := root[key]; !ok && param.Required {
			return BoundValue{}, missingKeyError(key)
		}
	} else {
		key = param.Name
	}

	if raw, ok := root[key]; ok {
		return decodeFound(raw, param, key)
	}

	return resolveAbsent(body, param, key)
}

// parseTree 解析请求体为顶层键到原始值的映射。合法但不是对象的
// JSON（数组、标量）没有可查找的键，按空树处理。
func parseTree(body []byte) (map[string]json.RawMessage, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		if !json.Valid(body) {
			return nil, err
		}
		return nil, nil
	}
	return root, nil
}

// decodeFound 按目标形状解码命中的值节点
func decodeFound(raw json.RawMessage, param *Param, key string) (BoundValue, error) {
	shape := param.Shape

	switch {
	case shape.IsPrimitive():
		return decodeScalar(raw, shape, key)
	case shape.Kind == KindString:
		return Of(asText(raw)), nil
	default:
		out := reflect.New(shape.Type)
		if err := decode.Value(raw, out.Interface()); err != nil {
			return BoundValue{}, structuralDecodeError(key, err)
		}
		return Of(instanceOf(out, shape)), nil
	}
}

// resolveAbsent 处理查找 key 不存在的情况
func resolveAbsent(body []byte, param *Param, key string) (BoundValue, error) {
	shape := param.Shape

	if shape.Kind != KindStruct && shape.Kind != KindMap || !param.ParseAllFields {
		// 单 key 绑定没有找到值：不可空的标量或必填参数直接失败
		if (shape.IsPrimitive() && !shape.Nullable) || param.Required {
			return BoundValue{}, missingKeyError(key)
		}
		return Absent(), nil
	}

	// 整体回退：对象自身的字段名可能直接对应请求体的顶层键
	out := reflect.New(shape.Type)
	if err := decode.Value(body, out.Interface()); err != nil {
		return BoundValue{}, structuralDecodeError(key, err)
	}

	if shape.Kind == KindMap {
		return Of(instanceOf(out, shape)), nil
	}

	if param.Required {
		touched, err := decode.TouchedFields(body, shape.Fields)
		if err != nil {
			return BoundValue{}, structuralDecodeError(key, err)
		}
		// 所有字段都没命中，说明请求体里没有任何键匹配该对象
		if len(touched) == 0 {
			return BoundValue{}, missingKeyError(key)
		}
	}

	return Of(instanceOf(out, shape)), nil
}

// decodeScalar 标量提取，宽化和截断交给 cast 库处理，
// 不做额外的范围校验
func decodeScalar(raw json.RawMessage, shape *Shape, key string) (BoundValue, error) {
	scalar, err := jsonScalar(raw)
	if err != nil {
		return BoundValue{}, structuralDecodeError(key, err)
	}

	if shape.Kind == KindChar {
		s := cast.ToString(scalar)
		// 字符参数遇到空串时返回 Absent，即使值节点存在
		if s == "" {
			return Absent(), nil
		}
		return Of(Char([]rune(s)[0])), nil
	}

	value, err := coerce(scalar, shape.Kind)
	if err != nil {
		return BoundValue{}, structuralDecodeError(key, err)
	}
	return Of(value), nil
}

// jsonScalar 解析标量节点。整数先尝试精确解析，失败再退回浮点，
// 保持大整数精度的同时保留浮点到整型的截断语义。
func jsonScalar(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if f, err := n.Float64(); err == nil {
			return f, nil
		}
		return n.String(), nil
	}

	return v, nil
}

func coerce(scalar interface{}, kind Kind) (interface{}, error) {
	switch kind {
	case KindInt:
		return cast.ToIntE(scalar)
	case KindInt8:
		return cast.ToInt8E(scalar)
	case KindInt16:
		return cast.ToInt16E(scalar)
	case KindInt32:
		return cast.ToInt32E(scalar)
	case KindInt64:
		return cast.ToInt64E(scalar)
	case KindUint:
		return cast.ToUintE(scalar)
	case KindUint8:
		return cast.ToUint8E(scalar)
	case KindUint16:
		return cast.ToUint16E(scalar)
	case KindUint32:
		return cast.ToUint32E(scalar)
	case KindUint64:
		return cast.ToUint64E(scalar)
	case KindFloat32:
		return cast.ToFloat32E(scalar)
	case KindFloat64:
		return cast.ToFloat64E(scalar)
	case KindBool:
		return cast.ToBoolE(scalar)
	}
	return nil, errors.Errorf("unsupported scalar kind %d", kind)
}

// asText 取值节点的文本形式，字符串节点返回已解转义的内容，
// 其他标量返回原始文本
func asText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return string(bytes.TrimSpace(raw))
}

// instanceOf 按目标可空性返回指针或值
func instanceOf(out reflect.Value, shape *Shape) interface{} {
	if shape.Nullable {
		return out.Interface()
	}
	return out.Elem().Interface()
}
