// Package web holds what every page handler shares: dependencies, the
// signed-in user, sessions, rendering and template helpers.
package web

import (
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/blobs"
	"github.com/Rahmadjon0038/new-lms/app/cache"
	"github.com/Rahmadjon0038/new-lms/app/config"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/month"
	"github.com/Rahmadjon0038/new-lms/app/prefs"
)

// Deps is built once in main and handed to every route group.
type Deps struct {
	Config   *config.Config
	Data     *data.Store
	Cache    *cache.Cache
	Prefs    *prefs.Store
	Blobs    *blobs.Registry
	Sessions *Sessions
	Log      *zap.Logger
}

// ThisMonth is the current month in the center's time zone.
func (d *Deps) ThisMonth() month.Month {
	return month.Current(d.Config.Location())
}
