package i18nx

import (
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizeData(t *testing.T) {
	AddMessages("en", []*i18n.Message{
		{ID: "en.GreetUser", Other: "hello {{.Name}}"},
	})
	AddMessages("zh", []*i18n.Message{
		{ID: "zh.GreetUser", Other: "你好 {{.Name}}"},
	})

	msg, err := Instance().LocalizeData("en", "GreetUser", map[string]interface{}{"Name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "hello Alice", msg)

	msg, err = Instance().LocalizeData("zh", "GreetUser", map[string]interface{}{"Name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "你好 Alice", msg)
}

func TestLocalizeUnknownKey(t *testing.T) {
	_, err := Instance().Localize("en", "NoSuchKey")
	assert.Error(t, err)
}

func TestAddMessagesBadLang(t *testing.T) {
	assert.Panics(t, func() {
		AddMessages("not-a-lang!", nil)
	})
}
