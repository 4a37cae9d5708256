// Package matedu is the Go client for the MatEdu educational platform
// backend. It bundles the session layer (token storage, authentication state)
// with typed services for the data endpoints the dashboards consume.
package matedu

import (
	"log"
	"os"

	"github.com/matedu/matedu-go/core"
	"github.com/matedu/matedu-go/core/academy"
	"github.com/matedu/matedu-go/core/session"
	gatewaysvc "github.com/matedu/matedu-go/services/gateway"
	logsvc "github.com/matedu/matedu-go/services/logger"
	filestore "github.com/matedu/matedu-go/storage/token/file"
)

// Client is the one object an application constructs at bootstrap and injects
// into whatever consumes the backend. There is no hidden singleton: its
// lifecycle is explicit, and two Clients on the same storage path observe
// each other's token writes through the store.
type Client struct {
	Conf    *core.Config
	Session *session.Service
	Academy *academy.Service

	store   core.TokenStore
	gateway core.Gateway
}

// NewClient wires a client from its parts: token store -> gateway -> session
// and data services. Pass a nil logger to pick one from the config (rollbar
// when a token is configured outside debug, plain logging otherwise).
func NewClient(conf *core.Config, store core.TokenStore, logger core.Logger) *Client {
	if conf == nil {
		conf = core.NewConfig()
	}
	if logger == nil {
		if conf.RollbarToken != "" && !conf.Debug {
			logger = logsvc.NewRollbarLogger(log.New(os.Stderr, "", log.LstdFlags), conf)
		} else {
			logger = logsvc.NewStdLogger(conf)
		}
	}

	gw := gatewaysvc.NewRESTGateway(conf, store, logger)
	return &Client{
		Conf:    conf,
		Session: session.NewService(store, gw, logger),
		Academy: academy.NewService(gw),
		store:   store,
		gateway: gw,
	}
}

// Open is the common path: a client with file-backed token storage under
// conf.Storage.Path.
func Open(conf *core.Config) (*Client, error) {
	if conf == nil {
		conf = core.NewConfig()
	}
	store, err := filestore.Open(conf.Storage.Path)
	if err != nil {
		return nil, err
	}
	return NewClient(conf, store, nil), nil
}

// Gateway exposes the request gateway for callers that need an endpoint this
// package has no typed wrapper for.
func (c *Client) Gateway() core.Gateway { return c.gateway }

// TokenStore exposes the underlying token store.
func (c *Client) TokenStore() core.TokenStore { return c.store }
