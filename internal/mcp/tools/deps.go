package tools

import (
	"github.com/datacell/graphtable/internal/cache"
	"github.com/datacell/graphtable/internal/config"
	"github.com/datacell/graphtable/internal/profile"
	"github.com/datacell/graphtable/internal/resultfetch"
	"github.com/datacell/graphtable/internal/rowextract"
	"github.com/datacell/graphtable/internal/trigger"
	"github.com/datacell/graphtable/pkg/client"
	"github.com/datacell/graphtable/pkg/table"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client    *client.Client
	Config    *config.Config
	Cache     *cache.ResultCache
	Deriver   *table.Deriver
	Extractor *rowextract.Extractor
	Fetcher   *resultfetch.Fetcher
	Profiler  *profile.Engine
}

// NewController creates a trigger controller wired to the shared fetcher.
// Controllers are cheap; tools build one per call and the result cache keeps
// repeated calls for the same inputs from re-querying.
func (d *Deps) NewController(opts ...trigger.ControllerOption) *trigger.Controller {
	return trigger.NewController(d.Fetcher.Fetch, d.Deriver, opts...)
}

// TableInputs is the shared configuration surface for table tools.
type TableInputs struct {
	SubjectID     string   `json:"subject_id,omitempty" jsonschema:"Anchor record ID that scopes the query"`
	GraphName     string   `json:"graph_name,omitempty" jsonschema:"Name of the graph to traverse"`
	RootEntity    string   `json:"root_entity,omitempty" jsonschema:"Target entity type (data model object)"`
	SelectFields  []string `json:"select_fields,omitempty" jsonschema:"Ordered field identifiers to select"`
	ColumnConfig  string   `json:"column_config,omitempty" jsonschema:"Serialized column schema JSON; an unusable value falls back to derivation"`
	RowLimit      int      `json:"row_limit,omitempty" jsonschema:"Max rows to render (default 10, max 200)"`
	RowExpression string   `json:"row_expression,omitempty" jsonschema:"Optional jq projection applied to each raw row before rendering"`
}

// TriggerInputs converts tool inputs into trigger inputs, clamping the row
// limit against the configured bounds.
func (d *Deps) TriggerInputs(ti TableInputs) trigger.Inputs {
	return trigger.Inputs{
		SubjectID:     ti.SubjectID,
		GraphName:     ti.GraphName,
		RootEntity:    ti.RootEntity,
		SelectFields:  ti.SelectFields,
		ColumnConfig:  ti.ColumnConfig,
		RowLimit:      d.Config.ClampRowLimit(ti.RowLimit),
		RowExpression: ti.RowExpression,
	}
}
