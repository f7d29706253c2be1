package multibody

const (
	I18nZH = "zh"
	I18nEN = "en"
)

const (
	// LangHeader 客户端指定错误消息语言的请求头
	LangHeader = "X-Lang"
	// OperationName 当前操作名称在 gin 上下文中的键
	OperationName = "x-operation-name"

	DefaultConfig = "config.yml"
)

const bindingResultPrefix = "multibody/binding-result/"
