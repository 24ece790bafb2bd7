package model

import (
	"encoding/json"
	"fmt"

	"github.com/duyet/finance-hub-sub002/internal/apperrors"
)

// Metadata is the optional key-value annotation attached to a tax lot
// (broker reference, corporate-action note, import source). It is persisted
// as a JSON text column and validated at the storage boundary.
type Metadata map[string]string

// ParseMetadata decodes a stored metadata blob. An empty blob yields nil.
// A blob that is not a flat JSON string map is reported as malformed rather
// than silently dropped.
func ParseMetadata(raw string) (Metadata, error) {
	if raw == "" {
		return nil, nil
	}

	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedMetadata, err)
	}
	return m, nil
}

// Encode serializes metadata for storage. Nil or empty metadata encodes to "".
func (m Metadata) Encode() (string, error) {
	if len(m) == 0 {
		return "", nil
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(raw), nil
}
