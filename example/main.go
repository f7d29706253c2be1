package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shrewx/multibody"
	"github.com/shrewx/multibody/pkg/logx"
	"github.com/spf13/cobra"
)

type UserProfile struct {
	Nickname string `json:"nickname" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// CreateUser 同一个 JSON 请求体按 key 拆分绑定到多个参数
type CreateUser struct {
	Name    string                   `body:"name" validate:"required"`
	Age     int                      `body:"age"`
	Remark  *string                  `body:"remark,optional"`
	Profile UserProfile              `body:""`
	Result  *multibody.BindingResult
}

func (c *CreateUser) Output(ctx *gin.Context) (interface{}, error) {
	if c.Result.HasErrors() {
		return nil, multibody.ErrValidationFailed.WithCause(c.Result.Err)
	}
	return gin.H{
		"name":     c.Name,
		"age":      c.Age,
		"nickname": c.Profile.Nickname,
	}, nil
}

func main() {
	multibody.Execute(func(cmd *cobra.Command, args []string) {
		var conf multibody.Configuration
		if _, err := os.Stat(multibody.DefaultConfig); err == nil {
			multibody.Conf(&conf)
		}
		multibody.Init(&conf)

		multibody.Warmup(&CreateUser{})

		r := gin.Default()
		r.POST("/user", multibody.Handler(&CreateUser{}))

		logx.Infof("example server listen on :8080")
		if err := r.Run(":8080"); err != nil {
			logx.Errorf("server exit: %s", err.Error())
		}
	})
}
