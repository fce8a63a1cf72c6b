package server

import (
	"fmt"

	"github.com/NeuralTrust/SpamShield/pkg/config"
	"github.com/NeuralTrust/SpamShield/pkg/infra/prometheus"
	"github.com/NeuralTrust/SpamShield/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	StorefrontServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	StorefrontServer struct {
		*BaseServer
	}
)

func NewStorefrontServer(di StorefrontServerDI) *StorefrontServer {
	if di.Config.Metrics.Enabled {
		prometheus.Initialize(prometheus.MetricsConfig{
			EnableLatency: di.Config.Metrics.EnableLatency,
		})
	}
	return &StorefrontServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
}

func (s *StorefrontServer) Run() error {
	addr := fmt.Sprintf(":%d", s.Config.Server.StorefrontPort)
	s.Logger.WithField("addr", addr).Info("Starting storefront server")
	return s.Router.Listen(addr)
}
