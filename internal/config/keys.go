package config

import (
	"fmt"

	"github.com/pipelinegrid/pipelinegrid/internal/port"
)

// BaseKey is the literal key for the base edge sub-block.
const BaseKey = "_edge"

// ByTypeKey builds the literal key for an override keyed by a downstream
// port type string.
func ByTypeKey(portType string) string {
	return fmt.Sprintf("_edge_by_type/%s", portType)
}

// ByConnKey builds the literal key for an override keyed by an endpoint
// address, using "." as the literal separator between process and port.
func ByConnKey(addr port.Address) string {
	return fmt.Sprintf("_edge_by_conn/%s", addr)
}
