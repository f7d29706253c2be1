package multibody

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shrewx/multibody/internal/bodycache"
	"github.com/shrewx/multibody/pkg/i18nx"
	"github.com/shrewx/multibody/pkg/logx"
	"github.com/spf13/cobra"
)

var (
	conf = &Configuration{
		Command: &cobra.Command{},
	}
	confFile string
)

type Configuration struct {
	*cobra.Command `yaml:"-"`

	// Lang 错误消息默认语言
	Lang string `yaml:"lang" env:"MULTIBODY_LANG"`
	// MaxBodyBytes 单次请求体读取上限，0 表示不限制
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MULTIBODY_MAX_BODY_BYTES"`

	Log  logx.Config  `yaml:"log"`
	I18n i18nx.Config `yaml:"i18n"`
}

// Init 应用插件配置
func Init(c *Configuration) {
	if c.Lang != "" {
		SetLang(c.Lang)
	}
	bodycache.SetMaxBodyBytes(c.MaxBodyBytes)
	logx.Load(&c.Log)
	i18nx.Load(&c.I18n)
}

func Conf(conf interface{}) {
	if confFile == DefaultConfig || confFile == "" {
		pwd, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		confFile = filepath.Join(pwd, DefaultConfig)
	}

	if err := cleanenv.ReadConfig(confFile, conf); err != nil {
		panic(err)
	}
}

func AddCommand(cmds ...*cobra.Command) {
	conf.Command.AddCommand(cmds...)
}

func Execute(run func(cmd *cobra.Command, args []string)) {
	conf.Command.Run = run
	conf.Command.Flags().StringVarP(&confFile, "config", "f", DefaultConfig, "define conf file path")
	if err := conf.Execute(); err != nil {
		panic(err)
	}
}
