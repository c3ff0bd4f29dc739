package keypath

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// canonicalize renders a parameter object to a stable string. Map entries are
// emitted in sorted key order and scalar values are normalized, so two
// logically identical filter objects built in different property orders fold
// into the same key segment. Anything the walker cannot decompose falls back
// to JSON.
func canonicalize(v any) string {
	return canonicalValue(v)
}

func canonicalValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	rt := reflect.TypeOf(v)

	switch rt.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return canonicalValue(rv.Elem().Interface())

	case reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return canonicalValue(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return canonicalSequence("slice", rv)

	case reflect.Array:
		return canonicalSequence("array", rv)

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return canonicalMap(rv)

	case reflect.Struct:
		return canonicalStruct(rv, rt)

	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)

	case reflect.Float32, reflect.Float64:
		// shortest round-trippable form so 2 and 2.0 collide
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)

	case reflect.String:
		return rv.String()

	default:
		return jsonFallback(v)
	}
}

func canonicalSequence(label string, rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = canonicalValue(rv.Index(i).Interface())
	}
	return fmt.Sprintf("%s[%d]:{%s}", label, len(parts), strings.Join(parts, ","))
}

func canonicalMap(rv reflect.Value) string {
	type pair struct{ k, v string }

	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{
			k: canonicalValue(iter.Key().Interface()),
			v: canonicalValue(iter.Value().Interface()),
		})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.k + "=" + p.v
	}
	return fmt.Sprintf("map[%d]:{%s}", len(parts), strings.Join(parts, ","))
}

func canonicalStruct(rv reflect.Value, rt reflect.Type) string {
	parts := make([]string, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if !fv.CanInterface() {
			continue
		}
		parts = append(parts, field.Name+":"+canonicalValue(fv.Interface()))
	}
	// struct fields already have a fixed declaration order; no sort needed
	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

func jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "opaque:" + reflect.TypeOf(v).String()
	}
	return "json:" + string(data)
}
