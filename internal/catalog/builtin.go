package catalog

import (
	_ "embed"
)

// BuiltinFile is the name reported for the embedded catalog in positions
// and error messages.
const BuiltinFile = "builtin/designer.arq.yaml"

//go:embed builtin/designer.arq.yaml
var builtinSource []byte

// BuiltinSource returns the raw YAML of the embedded Designer Archetype
// catalog. The returned slice is a copy.
func BuiltinSource() []byte {
	out := make([]byte, len(builtinSource))
	copy(out, builtinSource)
	return out
}
