package multibody

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeOf(t *testing.T) {
	tests := []struct {
		name     string
		target   interface{}
		kind     Kind
		nullable bool
	}{
		{name: "int", target: int(0), kind: KindInt},
		{name: "int pointer", target: (*int)(nil), kind: KindInt, nullable: true},
		{name: "int64", target: int64(0), kind: KindInt64},
		{name: "uint16", target: uint16(0), kind: KindUint16},
		{name: "float32", target: float32(0), kind: KindFloat32},
		{name: "bool", target: false, kind: KindBool},
		{name: "char", target: Char(0), kind: KindChar},
		{name: "rune is plain int32", target: rune(0), kind: KindInt32},
		{name: "string", target: "", kind: KindString},
		{name: "slice", target: []string(nil), kind: KindSlice},
		{name: "array", target: [3]int{}, kind: KindSlice},
		{name: "map", target: map[string]interface{}(nil), kind: KindMap},
		{name: "struct", target: testAddress{}, kind: KindStruct},
		{name: "struct pointer", target: (*testAddress)(nil), kind: KindStruct, nullable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := ShapeOf(reflect.TypeOf(tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, shape.Kind)
			assert.Equal(t, tt.nullable, shape.Nullable)
		})
	}
}

func TestShapeOfUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		target reflect.Type
	}{
		{name: "chan", target: reflect.TypeOf(make(chan int))},
		{name: "func", target: reflect.TypeOf(func() {})},
		{name: "complex", target: reflect.TypeOf(complex128(0))},
		{name: "nil", target: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ShapeOf(tt.target)
			assert.Error(t, err)
		})
	}
}

func TestShapeStructFields(t *testing.T) {
	type Base struct {
		ID int `json:"id"`
	}
	type form struct {
		Base
		Name    string `json:"name"`
		Renamed string `json:"display_name,omitempty"`
		Skipped string `json:"-"`
		Plain   string
		hidden  string
	}
	_ = form{hidden: ""}

	shape, err := ShapeOf(reflect.TypeOf(form{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "display_name", "Plain"}, shape.Fields)
}

func TestShapePredicates(t *testing.T) {
	intShape, err := ShapeOf(reflect.TypeOf(int(0)))
	require.NoError(t, err)
	assert.True(t, intShape.IsPrimitive())
	assert.False(t, intShape.IsCollection())

	charShape, err := ShapeOf(reflect.TypeOf(Char(0)))
	require.NoError(t, err)
	assert.True(t, charShape.IsPrimitive())

	strShape, err := ShapeOf(reflect.TypeOf(""))
	require.NoError(t, err)
	assert.False(t, strShape.IsPrimitive())

	sliceShape, err := ShapeOf(reflect.TypeOf([]int(nil)))
	require.NoError(t, err)
	assert.True(t, sliceShape.IsCollection())
	assert.False(t, sliceShape.IsPrimitive())
}
