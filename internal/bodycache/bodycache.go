// Package bodycache 缓存每个请求的原始请求体，保证底层输入流最多只被读取一次。
package bodycache

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// maxBodyBytes 为 0 时不限制单次读取大小
var maxBodyBytes int64

func SetMaxBodyBytes(n int64) {
	maxBodyBytes = n
}

type entry struct {
	once sync.Once
	body []byte
	err  error
}

// entries 以 *http.Request 为键，请求结束时必须调用 Release 清理，
// 避免缓存跨请求泄漏
var entries sync.Map

// Load 返回请求体的缓存副本。首次访问读取输入流并缓存，
// 之后的访问复用同一份数据。LoadOrStore 加 sync.Once 保证
// 即使同一请求被多个协程处理，输入流也只会被读取一次。
func Load(ctx *gin.Context) ([]byte, error) {
	v, _ := entries.LoadOrStore(ctx.Request, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.body, e.err = read(ctx.Request)
	})
	return e.body, e.err
}

func read(r *http.Request) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errors.New("request body is nil")
	}

	reader := io.Reader(r.Body)
	if maxBodyBytes > 0 {
		reader = io.LimitReader(r.Body, maxBodyBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}
	_ = r.Body.Close()

	// 恢复 body，后续中间件仍然可以读取
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}

// Release 丢弃请求对应的缓存条目
func Release(ctx *gin.Context) {
	if ctx != nil && ctx.Request != nil {
		entries.Delete(ctx.Request)
	}
}

// Cached 报告请求是否仍持有缓存条目
func Cached(ctx *gin.Context) bool {
	if ctx == nil || ctx.Request == nil {
		return false
	}
	_, ok := entries.Load(ctx.Request)
	return ok
}
