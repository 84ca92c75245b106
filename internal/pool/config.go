package pool

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
)

// EndpointConfig is one entry of the external endpoints file. The engine
// consumes only ID; Name and Specs are carried through for observability
// but otherwise opaque.
type EndpointConfig struct {
	ID    string                 `json:"id"`
	Name  string                 `json:"name"`
	Specs map[string]interface{} `json:"specs,omitempty"`
}

// endpointsFile mirrors the documented external JSON shape:
//
//	{ "globus_compute_endpoints": [ { "id": "...", "name": "...", "specs": {...} } ] }
type endpointsFile struct {
	Endpoints []EndpointConfig `json:"globus_compute_endpoints"`
}

// LoadEndpointsConfig reads and parses the endpoints file at path. Login,
// endpoint selection, and persistence of this file are external
// collaborators outside the core contract; this function only reads what
// is already there.
func LoadEndpointsConfig(path string) ([]EndpointConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewPoolError("load_config", errors.ErrorTypeInvalidArgument,
			fmt.Errorf("read endpoints file: %w", err))
	}

	var f endpointsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.NewPoolError("load_config", errors.ErrorTypeInvalidArgument,
			fmt.Errorf("parse endpoints file: %w", err))
	}

	return f.Endpoints, nil
}
