package utils

import (
	"math/rand"
	"reflect"
	"strings"
)

var letters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// GenerateRandomStringWithLength returns an uppercase reference code without
// easily confused characters (0/O, 1/I).
func GenerateRandomStringWithLength(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// TrimAllStringFields returns a copy of input with every string trimmed.
// Structs, pointers, slices and maps are walked recursively.
func TrimAllStringFields(input any) any {
	if input == nil {
		return nil
	}

	value := reflect.ValueOf(input)
	return trimValue(value).Interface()
}

func trimValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		newElem := trimValue(v.Elem())
		newPtr := reflect.New(newElem.Type())
		newPtr.Elem().Set(newElem)
		return newPtr

	case reflect.Struct:
		newStruct := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			if newStruct.Field(i).CanSet() {
				newStruct.Field(i).Set(trimValue(v.Field(i)))
			}
		}
		return newStruct

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		newSlice := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
		for i := 0; i < v.Len(); i++ {
			newSlice.Index(i).Set(trimValue(v.Index(i)))
		}
		return newSlice

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		newMap := reflect.MakeMap(v.Type())
		iter := v.MapRange()
		for iter.Next() {
			newMap.SetMapIndex(trimValue(iter.Key()), trimValue(iter.Value()))
		}
		return newMap

	case reflect.String:
		// keep named string types (enums) intact
		return reflect.ValueOf(strings.TrimSpace(v.String())).Convert(v.Type())
	}

	return v
}
