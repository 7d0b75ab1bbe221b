// Package crm serves the bundled customer records used by the
// financial-advisory endpoints in demo deployments.
package crm

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed crm_dummy_data.json
var rawRecords []byte

var (
	once    sync.Once
	records map[string]json.RawMessage
	loadErr error
)

func load() {
	records = map[string]json.RawMessage{}
	loadErr = json.Unmarshal(rawRecords, &records)
}

// Lookup returns the raw CRM record for a CIF id, or false when the id
// is unknown.
func Lookup(cifID string) (json.RawMessage, bool, error) {
	once.Do(load)
	if loadErr != nil {
		return nil, false, fmt.Errorf("parse CRM records: %w", loadErr)
	}
	record, ok := records[cifID]
	return record, ok, nil
}
