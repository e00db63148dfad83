package server

import (
	"fmt"

	"github.com/NeuralTrust/ContentGuard/pkg/config"
	"github.com/NeuralTrust/ContentGuard/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	GatewayServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	GatewayServer struct {
		*BaseServer
	}
)

func NewGatewayServer(di GatewayServerDI) *GatewayServer {
	return &GatewayServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
}

func (s *GatewayServer) Run() error {
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf(":%d", s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting moderation gateway")
	return s.Router.Listen(addr)
}

func (s *GatewayServer) Shutdown() error {
	return s.shutdown()
}
