package wiring

import (
	"tapcard/internal/contracts"
	tapserver "tapcard/internal/platform/server"
)

// Deps adapts the server and repositories to the per-feature Dependencies
// interfaces. Each deps_* file covers one repository family.
type Deps struct {
	srv   *tapserver.Server
	repos contracts.Repos
}

func NewDeps(srv *tapserver.Server) Deps {
	return Deps{srv: srv, repos: srv.Repos()}
}
