// Package api provides the HTTP API for the application
package api

import (
	"confmatrix/internal/platform/config"
	"confmatrix/internal/platform/logger"
	phttp "confmatrix/internal/platform/net/http"
	"confmatrix/internal/platform/store"

	"confmatrix/internal/modkit"
	"confmatrix/internal/modkit/httpkit"
	"confmatrix/internal/modkit/module"

	apimatrix "confmatrix/internal/services/api/matrix/module"
	metamod "confmatrix/internal/services/api/meta/module"
	apireport "confmatrix/internal/services/api/report/module"
	matrixmod "confmatrix/internal/services/matrix/module"
	reportmod "confmatrix/internal/services/report/module"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ServiceName names the API in meta responses and logs
const ServiceName = "confmatrix-api"

// jsonOnly rejects request bodies that are not JSON with 415
var jsonOnly = modkit.WithMiddlewares(chimw.AllowContentType("application/json"))

// Options are the API options
// Config is the root configuration, Store may be nil when no backend is configured
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router and returns the port registry
func Mount(r phttp.Router, opt Options) (*module.Registry, error) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}
	deps := modkit.FromStore(opt.Config, *log, opt.Store)

	// service modules own the ports, api modules only route to them
	matrix := matrixmod.New(deps, matrixmod.Options{})
	report, err := reportmod.New(deps, reportmod.Options{})
	if err != nil {
		return nil, err
	}

	reg := module.NewRegistry()
	mods := []module.Module{
		metamod.New(deps, ServiceName, reg.Names),
		matrix,
		report,
		apimatrix.New(deps, modkit.WithPorts(module.MustPortsOf[matrixmod.Ports](matrix)), jsonOnly),
		apireport.New(deps, modkit.WithPorts(module.MustPortsOf[reportmod.Ports](report)), jsonOnly),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config.Prefix("CORE_")), func(api httpkit.Router) {
		for _, m := range mods {
			reg.Add(m)
			m.MountRoutes(api)
		}
	})

	log.Info().Strs("modules", reg.Names()).Msg("api mounted")
	return reg, nil
}
