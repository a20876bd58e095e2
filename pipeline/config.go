package pipeline

import (
	"github.com/pipelinegrid/pipelinegrid/internal/config"
	"github.com/pipelinegrid/pipelinegrid/internal/process"
)

// SubBlock is the value type a configuration sub-block resolves to.
type SubBlock = process.SubBlock

// SubBlockLookup is the contract the builder's edge materializer uses to
// fetch a named configuration sub-block. Configuration storage itself is
// out of scope; the builder only ever calls SubBlock.
type SubBlockLookup = config.SubBlockLookup

// MapLookup is a SubBlockLookup backed by a plain in-memory map.
type MapLookup = config.MapLookup
