package container

import (
	"reflect"
	"strings"
	"unicode"
)

// componentName derives the default component name from a type: pointers are
// stripped and the simple type name is converted from Pascal case to snake
// case, e.g. *PrintService -> "print_service".
func componentName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		// Unnamed types (maps, slices, funcs) have no simple name; fall back
		// to the full type string with syntax stripped.
		name = strings.NewReplacer("*", "", "[", "", "]", "", " ", "").Replace(t.String())
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
	}

	var b strings.Builder
	for _, ch := range name {
		if unicode.IsUpper(ch) {
			if b.Len() > 0 {
				b.WriteByte('_')
			}
			ch = unicode.ToLower(ch)
		}
		b.WriteRune(ch)
	}
	return b.String()
}
