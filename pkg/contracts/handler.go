package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP module mounted by app.Application,
// including the health endpoints.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
