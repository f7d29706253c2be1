package multibody

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/shrewx/multibody/pkg/logx"
)

var bindingResultType = reflect.TypeOf(&BindingResult{})

// LimitedPool 带大小限制的对象池，
// 避免高 QPS 后池中积累过多对象导致内存占用过高
type LimitedPool struct {
	pool          *sync.Pool
	maxSize       int32
	current       int32
	lastClean     int64
	cleanInterval time.Duration
}

func NewLimitedPool(newFunc func() interface{}, maxSize int32) *LimitedPool {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &LimitedPool{
		pool:          &sync.Pool{New: newFunc},
		maxSize:       maxSize,
		lastClean:     time.Now().Unix(),
		cleanInterval: 5 * time.Minute,
	}
}

func (lp *LimitedPool) Get() interface{} {
	obj := lp.pool.Get()
	if obj != nil {
		atomic.AddInt32(&lp.current, -1)
	}
	return obj
}

func (lp *LimitedPool) Put(obj interface{}) {
	if obj == nil {
		return
	}

	now := time.Now().Unix()
	lastClean := atomic.LoadInt64(&lp.lastClean)
	if now-lastClean > int64(lp.cleanInterval.Seconds()) {
		// 定期重置计数器，让 GC 自然回收多余对象
		atomic.StoreInt32(&lp.current, 0)
		atomic.StoreInt64(&lp.lastClean, now)
	}

	if atomic.LoadInt32(&lp.current) >= lp.maxSize {
		return
	}

	lp.pool.Put(obj)
	atomic.AddInt32(&lp.current, 1)
}

// TypeInfo 目标结构体的绑定描述符集合，按类型解析一次后缓存
type TypeInfo struct {
	ElemType reflect.Type
	Params   []Param
	Pool     *LimitedPool
}

// NewInstance 从对象池获取或创建新实例
func (info *TypeInfo) NewInstance() interface{} {
	if instance := info.Pool.Get(); instance != nil {
		if reflect.TypeOf(instance).Elem() == info.ElemType {
			return instance
		}
	}
	return reflect.New(info.ElemType).Interface()
}

// PutInstance 重置实例后放回对象池，避免不同请求之间的数据污染
func (info *TypeInfo) PutInstance(instance interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("PutInstance panic recovered: %v, instance type: %v", r, reflect.TypeOf(instance))
		}
	}()

	v := reflect.ValueOf(instance).Elem()
	for _, param := range info.Params {
		field := v.Field(param.Index)
		if field.CanSet() {
			field.Set(reflect.Zero(field.Type()))
		}
		if param.SinkIndex >= 0 {
			sink := v.Field(param.SinkIndex)
			if sink.CanSet() {
				sink.Set(reflect.Zero(sink.Type()))
			}
		}
	}
	info.Pool.Put(instance)
}

type typeCacheEntry struct {
	info *TypeInfo
	err  error
}

var globalTypeCache sync.Map // map[reflect.Type]*typeCacheEntry

// GetTypeInfo 获取目标类型的绑定描述符（带缓存）
func GetTypeInfo(targetType reflect.Type) (*TypeInfo, error) {
	if targetType.Kind() != reflect.Ptr {
		targetType = reflect.PointerTo(targetType)
	}

	if cached, ok := globalTypeCache.Load(targetType); ok {
		entry := cached.(*typeCacheEntry)
		return entry.info, entry.err
	}

	info, err := parseTargetType(targetType)
	globalTypeCache.Store(targetType, &typeCacheEntry{info: info, err: err})

	return info, err
}

func parseTargetType(targetType reflect.Type) (*TypeInfo, error) {
	elemType := targetType.Elem()
	if elemType.Kind() != reflect.Struct {
		return nil, errors.Errorf("bind target %s is not a struct", elemType.String())
	}

	info := &TypeInfo{
		ElemType: elemType,
		Params:   make([]Param, 0),
	}
	info.Pool = NewLimitedPool(func() interface{} {
		return reflect.New(elemType).Interface()
	}, 1000)

	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		if field.PkgPath != "" {
			continue
		}

		if _, ok := field.Tag.Lookup("body"); !ok {
			// 紧跟在绑定字段后面的 *BindingResult 是它的错误收集参数
			if field.Type == bindingResultType && len(info.Params) > 0 {
				last := &info.Params[len(info.Params)-1]
				if last.Index == i-1 {
					last.SinkIndex = i
				}
			}
			continue
		}

		param, err := parseParam(field, i)
		if err != nil {
			return nil, errors.Wrapf(err, "parse binding field %s.%s", elemType.Name(), field.Name)
		}
		info.Params = append(info.Params, param)
	}

	return info, nil
}

// ClearCache 清空类型缓存（主要用于测试）
func ClearCache() {
	globalTypeCache = sync.Map{}
}

// Warmup 预热类型缓存，注册阶段即可暴露配置错误
func Warmup(targets ...interface{}) {
	for _, target := range targets {
		if _, err := GetTypeInfo(reflect.TypeOf(target)); err != nil {
			logx.Errorf("warmup type %v fail: %s", reflect.TypeOf(target), err.Error())
		}
	}
}
