package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// swaggerHandler serves the interactive docs UI reading /openapi.yaml.
func swaggerHandler() echo.HandlerFunc {
	return echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/openapi.yaml"),
		echoSwagger.DeepLinking(true),
	)
}
