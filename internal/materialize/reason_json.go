package materialize

import (
	"encoding/json"
	"fmt"
)

// Reasons are stored in the run journal as stable strings, not enum ints, so
// recorded reports stay readable if the enum order ever changes.

var reasonNames = map[Reason]string{
	PermissionDenied:        "permission_denied",
	NameTypeConflict:        "name_type_conflict",
	CascadedAncestorFailure: "cascaded_ancestor_failure",
	OtherFailure:            "other",
}

func (r Reason) MarshalJSON() ([]byte, error) {
	name, ok := reasonNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown failure reason %d", int(r))
	}
	return json.Marshal(name)
}

func (r *Reason) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for reason, n := range reasonNames {
		if n == name {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("unknown failure reason %q", name)
}
