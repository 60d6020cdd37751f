package template

import _ "embed"

//go:embed templates/store-audit.yaml
var storeAuditYAML []byte

//go:embed templates/shift-close.yaml
var shiftCloseYAML []byte

// builtinTemplates maps template names to their embedded YAML content.
var builtinTemplates = map[string][]byte{
	"store-audit": storeAuditYAML,
	"shift-close": shiftCloseYAML,
}
