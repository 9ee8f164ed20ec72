package mcpsrv

import (
	"github.com/datacell/graphtable/internal/cache"
	"github.com/datacell/graphtable/internal/config"
	"github.com/datacell/graphtable/internal/profile"
	"github.com/datacell/graphtable/internal/resultfetch"
	"github.com/datacell/graphtable/internal/rowextract"
	"github.com/datacell/graphtable/pkg/client"
	"github.com/datacell/graphtable/pkg/table"
)

// Deps contains all dependencies available to custom tools. This gives
// custom tools access to the same infrastructure as the builtin tools.
type Deps struct {
	Client    *client.Client
	Config    *config.Config
	Cache     *cache.ResultCache
	Deriver   *table.Deriver
	Extractor *rowextract.Extractor
	Fetcher   *resultfetch.Fetcher
	Profiler  *profile.Engine
}
