package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
)

type validatable interface {
	Validate() error
}

// decodeList decodes a stored JSON array leniently: a missing or unparsable
// document yields an empty slice and records that fail to decode or
// validate are skipped. Each skip is logged at warn level.
func decodeList[T validatable](ctx context.Context, log logging.Logger, key string, data []byte) []T {
	out := []T{}
	if len(data) == 0 {
		return out
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn(ctx, "stored collection is unreadable, treating as empty", "key", key, "error", err)
		return out
	}

	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			log.Warn(ctx, "dropping undecodable record", "key", key, "index", i, "error", err)
			continue
		}
		if err := v.Validate(); err != nil {
			log.Warn(ctx, "dropping invalid record", "key", key, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
