package multibody

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

// StructValidator 解码后校验的收口接口，默认实现基于
// go-playground/validator，可整体替换
type StructValidator interface {
	ValidateStruct(obj interface{}) error
	ValidateVar(value interface{}, tag string) error
	Engine() interface{}
}

var Validator StructValidator = &defaultValidator{}

func SetValidator(v StructValidator) {
	Validator = v
}

type defaultValidator struct {
	once     sync.Once
	validate *validator.Validate
}

func (v *defaultValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New()
	})
}

func (v *defaultValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}

	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	v.lazyinit()
	return v.validate.Struct(value.Interface())
}

func (v *defaultValidator) ValidateVar(value interface{}, tag string) error {
	if tag == "" {
		return nil
	}
	v.lazyinit()
	return v.validate.Var(value, tag)
}

func (v *defaultValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}
