package multibody

import (
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shrewx/multibody/internal/bodycache"
)

// BindingResult 收集单个参数解码后的校验错误。目标结构体里紧跟在
// 绑定字段后面的 *BindingResult 字段会吸收该字段的校验错误，
// 绑定不再因校验失败而中断，由业务代码自行检查。
type BindingResult struct {
	Param string
	Err   error
}

func (r *BindingResult) HasErrors() bool {
	return r != nil && r.Err != nil
}

// BindingErrors 从 gin 上下文取出指定参数的校验结果
func BindingErrors(ctx *gin.Context, name string) *BindingResult {
	if value, ok := ctx.Get(bindingResultPrefix + name); ok {
		return value.(*BindingResult)
	}
	return nil
}

// Bind 把共享 JSON 请求体中的各个 key 绑定到 target 的声明字段上，
// 并对每个解码出的值执行校验。返回前释放请求体缓存，直接调用方
// 不需要额外清理；重复 Bind 读取的是恢复后的请求体副本。
func Bind(ctx *gin.Context, target interface{}) error {
	defer bodycache.Release(ctx)

	info, err := GetTypeInfo(reflect.TypeOf(target))
	if err != nil {
		return ErrInvalidBindTarget.WithCause(err)
	}
	return bindWithInfo(ctx, target, info)
}

func bindWithInfo(ctx *gin.Context, target interface{}, info *TypeInfo) error {
	v := reflect.ValueOf(target).Elem()

	for i := range info.Params {
		param := &info.Params[i]

		bound, err := Resolve(ctx, param)
		if err != nil {
			return err
		}

		if !bound.IsAbsent() {
			if err := assign(v.Field(param.Index), bound); err != nil {
				return structuralDecodeError(displayKey(param), err)
			}
		}

		result := &BindingResult{Param: param.Name}
		if !bound.IsAbsent() {
			result.Err = validateParam(param, bound.Value())
		}
		ctx.Set(bindingResultPrefix+param.Name, result)

		if param.SinkIndex >= 0 {
			v.Field(param.SinkIndex).Set(reflect.ValueOf(result))
			continue
		}
		if result.Err != nil {
			return validationError(param, result.Err)
		}
	}

	return nil
}

func validateParam(param *Param, value interface{}) error {
	if param.Shape.Kind == KindStruct {
		return Validator.ValidateStruct(value)
	}
	return Validator.ValidateVar(value, param.ValidateTag)
}

func validationError(param *Param, cause error) error {
	e := ErrValidationFailed.
		WithParams(map[string]interface{}{"Key": displayKey(param)}).
		WithCause(cause)

	var verrs validator.ValidationErrors
	if errors.As(cause, &verrs) {
		list := make([]map[string]interface{}, 0, len(verrs))
		for _, fe := range verrs {
			list = append(list, map[string]interface{}{
				"field": fe.Field(),
				"tag":   fe.Tag(),
				"param": fe.Param(),
			})
		}
		e = e.WithErrList(list)
	}

	return e
}

func displayKey(param *Param) string {
	if param.Key != "" {
		return param.Key
	}
	return param.Name
}

// assign 把解析结果写入目标字段，标量会按需转换到命名类型
func assign(field reflect.Value, bound BoundValue) error {
	value := reflect.ValueOf(bound.Value())
	fieldType := field.Type()

	if value.Type().AssignableTo(fieldType) {
		field.Set(value)
		return nil
	}

	if fieldType.Kind() == reflect.Ptr {
		if value.Type().ConvertibleTo(fieldType.Elem()) {
			ptr := reflect.New(fieldType.Elem())
			ptr.Elem().Set(value.Convert(fieldType.Elem()))
			field.Set(ptr)
			return nil
		}
		return errors.Errorf("can not assign %s to %s", value.Type(), fieldType)
	}

	if value.Type().ConvertibleTo(fieldType) {
		field.Set(value.Convert(fieldType))
		return nil
	}

	return errors.Errorf("can not assign %s to %s", value.Type(), fieldType)
}
