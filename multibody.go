package multibody

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shrewx/multibody/internal/bodycache"
	"github.com/shrewx/multibody/pkg/i18nx"
	"github.com/shrewx/multibody/pkg/logx"
	"github.com/shrewx/multibody/pkg/statuserror"
)

// Operator 业务处理单元，字段即参数
type Operator interface {
	Output(ctx *gin.Context) (interface{}, error)
}

// Handler 将操作符包装为 gin.HandlerFunc：
// 从对象池获取实例、绑定参数、执行业务逻辑、统一处理错误和响应。
// 绑定元数据不完整属于配置错误，注册阶段直接 panic。
func Handler(op Operator) gin.HandlerFunc {
	info, err := GetTypeInfo(reflect.TypeOf(op))
	if err != nil {
		panic(err)
	}

	return func(ctx *gin.Context) {
		// 请求结束时丢弃请求体缓存，避免跨请求泄漏
		defer bodycache.Release(ctx)

		instance := info.NewInstance()
		operator, ok := instance.(Operator)
		if !ok {
			abortWithError(ctx, ErrInternalServerError)
			return
		}
		defer info.PutInstance(instance)

		ctx.Set(OperationName, info.ElemType.Name())

		if err := bindWithInfo(ctx, instance, info); err != nil {
			abortWithError(ctx, err)
			return
		}

		result, err := operator.Output(ctx)
		if err != nil {
			abortWithError(ctx, err)
			return
		}

		if handle, ok := result.(gin.HandlerFunc); ok {
			handle(ctx)
		}

		if !ctx.IsAborted() && !ctx.Writer.Written() && ctx.Writer.Status() == http.StatusOK {
			code := http.StatusOK
			if ctx.Request.Method == http.MethodPost {
				code = http.StatusCreated
			}
			ctx.JSON(code, result)
		}
	}
}

func abortWithError(ctx *gin.Context, err error) {
	operationName, _ := ctx.Get(OperationName)
	logx.Errorf("handle %v request err: %s", operationName, err.Error())

	switch e := err.(type) {
	case statuserror.CommonError:
		abortWithStatusPureJSON(ctx, formatCode(e.StatusCode()), e.Localize(i18nx.Instance(), GetLang(ctx)))
	default:
		abortWithStatusPureJSON(ctx, http.StatusUnprocessableEntity,
			ErrInternalServerError.Localize(i18nx.Instance(), GetLang(ctx)))
	}
}

func abortWithStatusPureJSON(ctx *gin.Context, code int, jsonObj interface{}) {
	ctx.Abort()
	ctx.PureJSON(code, jsonObj)
}

func formatCode(statusCode int) int {
	if statusCode < 400 {
		return http.StatusUnprocessableEntity
	}
	return statusCode
}

var i18nLang = I18nZH

// SetLang 设置错误消息的默认语言
func SetLang(lang string) {
	i18nLang = strings.ToLower(lang)
}

func GetLang(ctx *gin.Context) string {
	if lang := ctx.GetHeader(LangHeader); lang != "" {
		return strings.ToLower(lang)
	}
	return i18nLang
}
