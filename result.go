package multibody

// BoundValue 是一次参数解析的结果。可选参数缺失是合法结果而不是错误，
// 用 Absent 区分，调用方不需要靠错误处理来表达"没找到"。
type BoundValue struct {
	value  interface{}
	absent bool
}

func Of(value interface{}) BoundValue {
	return BoundValue{value: value}
}

func Absent() BoundValue {
	return BoundValue{absent: true}
}

func (b BoundValue) IsAbsent() bool {
	return b.absent
}

func (b BoundValue) Value() interface{} {
	return b.value
}
