package main

import (
	"fmt"

	"oneclip/clip-api/api"
	"oneclip/clip-api/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	port := viper.GetInt("host.port")
	zap.L().Info("Server starting", zap.Int("port", port))

	err = a.Router.Run(fmt.Sprintf(":%d", port))
	if err != nil {
		panic(err)
	}
}
