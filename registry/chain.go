package registry

import "reflect"

// embeddedChain walks t's embedded fields breadth-first and returns t
// followed by its embedded ancestors, most derived first. Pointer links are
// followed; the chain records the field types as declared.
func embeddedChain(t reflect.Type) []reflect.Type {
	chain := []reflect.Type{t}
	seen := map[reflect.Type]bool{t: true}

	for i := 0; i < len(chain); i++ {
		st := chain[i]
		if st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			continue
		}

		for f := 0; f < st.NumField(); f++ {
			field := st.Field(f)
			if !field.Anonymous || seen[field.Type] {
				continue
			}

			seen[field.Type] = true
			chain = append(chain, field.Type)
		}
	}

	return chain
}

// embeddedIndex returns the field index path from src down to the embedded
// ancestor dst, usable with reflect.Value.FieldByIndex after the top-level
// pointer (if any) is dereferenced.
func embeddedIndex(src, dst reflect.Type) ([]int, bool) {
	type node struct {
		typ  reflect.Type
		path []int
	}

	queue := []node{{typ: src}}
	seen := map[reflect.Type]bool{src: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		st := cur.typ
		if st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			continue
		}

		for f := 0; f < st.NumField(); f++ {
			field := st.Field(f)
			if !field.Anonymous || seen[field.Type] {
				continue
			}

			seen[field.Type] = true
			path := append(append([]int{}, cur.path...), f)
			if field.Type == dst {
				return path, true
			}

			queue = append(queue, node{typ: field.Type, path: path})
		}
	}

	return nil, false
}
