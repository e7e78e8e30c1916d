package api

import (
	"net/http"

	"github.com/shivanished/boon-pipeline/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, runtime *Runtime) {
	groups := []routes.Group{
		newOrdersHandler(runtime).routes(),
	}

	if runtime.Storage != nil {
		groups = append(groups, newStorageHandler(runtime).routes())
	}

	routes.Register(mux, groups...)
}
