package opts

import (
	"github.com/walteh/drushkit/pkg/backup"
	"github.com/walteh/drushkit/pkg/config"
	"github.com/walteh/drushkit/pkg/status"
	"github.com/walteh/drushkit/pkg/tempfiles"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Store      *config.Store
	Registry   *tempfiles.Registry
	Allocator  *tempfiles.Allocator
	Planner    *backup.Planner
	UserLogger *status.UserLogger
}
