// Package decode 是通用的 JSON 结构化解码器，除解码外还负责上报
// 整体解码时哪些声明字段真正被命中。
package decode

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

var nullLiteral = []byte("null")

// Value 将 JSON 文本解码到 out 指向的结构
func Value(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode json value")
	}
	return nil
}

// TouchedFields 上报整体解码时被命中的声明字段：请求体顶层键中
// 与声明字段名匹配且取值不为 null 的那些。显式的 null 视为未命中，
// 与解码后字段保持空值的行为一致。
func TouchedFields(data []byte, declared []string) ([]string, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "decode json object")
	}

	var touched []string
	for _, name := range declared {
		raw, ok := root[name]
		if !ok {
			// encoding/json 在精确匹配失败后会退回大小写不敏感匹配
			for key, value := range root {
				if strings.EqualFold(key, name) {
					raw, ok = value, true
					break
				}
			}
		}
		if ok && !bytes.Equal(bytes.TrimSpace(raw), nullLiteral) {
			touched = append(touched, name)
		}
	}

	return touched, nil
}
