package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var errNotUUIDString = errors.New("expected a uuid string or null")

// OptionalUUID is a clearable reference in a partial update. An absent key
// leaves the stored value alone, null or "" clears it, and a uuid string
// replaces it. A string that is not a uuid is kept as Invalid so validation
// can report it against the field name.
type OptionalUUID struct {
	Value   *uuid.UUID
	Set     bool
	Invalid bool
}

func (o OptionalUUID) IsZero() bool {
	return !o.Set
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	*o = OptionalUUID{Set: true}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errNotUUIDString
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parsed, err := uuid.Parse(raw)
	if err != nil {
		o.Invalid = true
		return nil
	}
	o.Value = &parsed
	return nil
}

// InvalidFields reports the optional uuid fields that did not parse, keyed
// by their JSON name.
func (r UpdateLeadRequest) InvalidFields() map[string]string {
	fields := map[string]string{}
	if r.PackageID.Invalid {
		fields["packageId"] = "uuid"
	}
	if r.AssignedTo.Invalid {
		fields["assignedTo"] = "uuid"
	}
	return fields
}
