package freecad

import (
	"fmt"
	"strings"
)

// typePrefixes are the object type namespaces the addon can instantiate.
var typePrefixes = []string{"Part::", "Draft::", "PartDesign::", "Fem::"}

// ValidatePayload checks an object payload before it crosses the wire and
// fills in defaults for the optional fields. Rejecting malformed payloads
// here saves a round trip that would only fail inside FreeCAD with a far
// less helpful traceback.
func ValidatePayload(p *ObjectPayload) error {
	if p.Name == "" {
		return fmt.Errorf("freecad: object payload missing required field Name")
	}
	if p.Type == "" {
		return fmt.Errorf("freecad: object payload missing required field Type")
	}

	valid := false
	for _, prefix := range typePrefixes {
		if strings.HasPrefix(p.Type, prefix) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("freecad: object type %q must start with one of %s",
			p.Type, strings.Join(typePrefixes, ", "))
	}

	if p.Properties == nil {
		p.Properties = map[string]any{}
	}
	return nil
}
