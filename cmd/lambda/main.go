package main

import (
	"context"
	"log"

	"github.com/allanboury/ao-trading-dasboard/api"
	"github.com/allanboury/ao-trading-dasboard/cmd"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/joho/godotenv"
)

type lambdaHandler struct {
	apiHandler *api.ApiHandler
}

func (m lambdaHandler) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	engine := m.apiHandler.InitializeRouterEngine()
	ginLambda := ginadapter.New(engine)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	_ = godotenv.Load()

	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	apiHandler, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	handler := lambdaHandler{
		apiHandler: apiHandler,
	}

	lambda.Start(handler.Handler)
}
