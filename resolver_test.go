package multibody

import (
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAddress struct {
	City string `json:"city"`
	Zip  string `json:"zip"`
}

func newTestContext(t *testing.T, body string) *gin.Context {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("POST", "/api/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req

	return ctx
}

func mustShape(t *testing.T, target interface{}) *Shape {
	t.Helper()
	shape, err := ShapeOf(reflect.TypeOf(target))
	require.NoError(t, err)
	return shape
}

func newTestParam(t *testing.T, name, key string, required bool, target interface{}) *Param {
	t.Helper()
	return &Param{
		Name:           name,
		Key:            key,
		Required:       required,
		ParseAllFields: true,
		SinkIndex:      -1,
		Shape:          mustShape(t, target),
	}
}

func TestResolveScalar(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		body   string
		param  func(t *testing.T) *Param
		expect interface{}
	}{
		{
			name:   "int from number",
			body:   `{"age":30}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "age", "age", true, int(0)) },
			expect: 30,
		},
		{
			name:   "int truncates float",
			body:   `{"age":3.9}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "age", "age", true, int(0)) },
			expect: 3,
		},
		{
			name:   "int64 keeps precision",
			body:   `{"id":9007199254740993}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "id", "id", true, int64(0)) },
			expect: int64(9007199254740993),
		},
		{
			name:   "float64",
			body:   `{"score":99.5}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "score", "score", true, float64(0)) },
			expect: 99.5,
		},
		{
			name:   "bool",
			body:   `{"active":true}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "active", "active", true, false) },
			expect: true,
		},
		{
			name:   "string verbatim",
			body:   `{"name":"Alice"}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "name", "name", true, "") },
			expect: "Alice",
		},
		{
			name:   "string from number node",
			body:   `{"name":30}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "name", "name", true, "") },
			expect: "30",
		},
		{
			name:   "char takes first rune",
			body:   `{"grade":"ABC"}`,
			param:  func(t *testing.T) *Param { return newTestParam(t, "grade", "grade", true, Char(0)) },
			expect: Char('A'),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, tt.body)

			bound, err := Resolve(ctx, tt.param(t))
			require.NoError(t, err)
			require.False(t, bound.IsAbsent())
			assert.Equal(t, tt.expect, bound.Value())
		})
	}
}

func TestResolveCharEmptyString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := newTestContext(t, `{"grade":""}`)

	// key 存在但文本为空时返回 Absent 而不是错误
	bound, err := Resolve(ctx, newTestParam(t, "grade", "grade", true, Char(0)))
	require.NoError(t, err)
	assert.True(t, bound.IsAbsent())
}

func TestResolveMissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("required explicit key absent fails", func(t *testing.T) {
		ctx := newTestContext(t, `{"other":1}`)
		_, err := Resolve(ctx, newTestParam(t, "name", "name", true, ""))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequiredKey))
	})

	t.Run("optional nullable primitive absent yields Absent", func(t *testing.T) {
		ctx := newTestContext(t, `{"other":1}`)
		bound, err := Resolve(ctx, newTestParam(t, "age", "age", false, (*int)(nil)))
		require.NoError(t, err)
		assert.True(t, bound.IsAbsent())
	})

	t.Run("non-nullable primitive absent always fails", func(t *testing.T) {
		ctx := newTestContext(t, `{"other":1}`)
		_, err := Resolve(ctx, newTestParam(t, "age", "age", false, int(0)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequiredKey))
	})

	t.Run("optional string absent yields Absent", func(t *testing.T) {
		ctx := newTestContext(t, `{"other":1}`)
		bound, err := Resolve(ctx, newTestParam(t, "remark", "", false, ""))
		require.NoError(t, err)
		assert.True(t, bound.IsAbsent())
	})

	t.Run("collection absent skips whole-body fallback", func(t *testing.T) {
		ctx := newTestContext(t, `{"other":1}`)
		_, err := Resolve(ctx, newTestParam(t, "tags", "", true, []string(nil)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequiredKey))
	})
}

func TestResolveExplicitKeyPrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := newTestContext(t, `{"nick":"Bob","name":"Alice"}`)

	bound, err := Resolve(ctx, newTestParam(t, "name", "nick", true, ""))
	require.NoError(t, err)
	assert.Equal(t, "Bob", bound.Value())
}

func TestResolveStructByKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := newTestContext(t, `{"addr":{"city":"Hangzhou","zip":"310000"}}`)

	bound, err := Resolve(ctx, newTestParam(t, "addr", "", true, testAddress{}))
	require.NoError(t, err)

	addr, ok := bound.Value().(testAddress)
	require.True(t, ok)
	assert.Equal(t, "Hangzhou", addr.City)
	assert.Equal(t, "310000", addr.Zip)
}

func TestResolveWholeBodyFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("field names match top-level keys", func(t *testing.T) {
		ctx := newTestContext(t, `{"city":"Hangzhou"}`)
		bound, err := Resolve(ctx, newTestParam(t, "addr", "", true, testAddress{}))
		require.NoError(t, err)

		addr := bound.Value().(testAddress)
		assert.Equal(t, "Hangzhou", addr.City)
		assert.Equal(t, "", addr.Zip)
	})

	t.Run("no field matches fails when required", func(t *testing.T) {
		ctx := newTestContext(t, `{"foo":1,"bar":2}`)
		_, err := Resolve(ctx, newTestParam(t, "addr", "", true, testAddress{}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequiredKey))
	})

	t.Run("all explicit nulls fail when required", func(t *testing.T) {
		ctx := newTestContext(t, `{"city":null,"zip":null}`)
		_, err := Resolve(ctx, newTestParam(t, "addr", "", true, testAddress{}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequiredKey))
	})

	t.Run("empty body object succeeds when not required", func(t *testing.T) {
		ctx := newTestContext(t, `{}`)
		bound, err := Resolve(ctx, newTestParam(t, "addr", "", false, testAddress{}))
		require.NoError(t, err)
		require.False(t, bound.IsAbsent())
		assert.Equal(t, testAddress{}, bound.Value())
	})

	t.Run("noflat disables fallback", func(t *testing.T) {
		ctx := newTestContext(t, `{"city":"Hangzhou"}`)
		param := newTestParam(t, "addr", "", true, testAddress{})
		param.ParseAllFields = false
		_, err := Resolve(ctx, param)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequiredKey))
	})
}

func TestResolveMapFallbackNeverFails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body string
		size int
	}{
		{name: "populated body", body: `{"a":1,"b":2}`, size: 2},
		{name: "empty body", body: `{}`, size: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, tt.body)
			bound, err := Resolve(ctx, newTestParam(t, "meta", "", true, map[string]interface{}(nil)))
			require.NoError(t, err)
			require.False(t, bound.IsAbsent())

			m, ok := bound.Value().(map[string]interface{})
			require.True(t, ok)
			assert.Len(t, m, tt.size)
		})
	}
}

func TestResolveMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := newTestContext(t, `{"a":`)

	// 同一个请求的每个参数解析都失败
	_, err := Resolve(ctx, newTestParam(t, "a", "a", true, int(0)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedBody))

	_, err = Resolve(ctx, newTestParam(t, "b", "b", false, (*int)(nil)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedBody))
}

func TestResolveStructuralDecodeError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := newTestContext(t, `{"addr":"not an object"}`)

	_, err := Resolve(ctx, newTestParam(t, "addr", "", true, testAddress{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructuralDecode))
}

func TestResolveMissingParameterName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := newTestContext(t, `{"a":1}`)

	param := newTestParam(t, "", "", true, int(0))
	_, err := Resolve(ctx, param)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingParameterName))
}

func TestResolveNonObjectBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 合法 JSON 但不是对象：没有可查的键，按缺失处理
	ctx := newTestContext(t, `[1,2,3]`)
	bound, err := Resolve(ctx, newTestParam(t, "age", "age", false, (*int)(nil)))
	require.NoError(t, err)
	assert.True(t, bound.IsAbsent())
}
