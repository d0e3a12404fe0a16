package clog

import (
	"fmt"
	"reflect"
	"strings"
)

// 嵌入结构体的最大展开深度，防止指针互相嵌入时无限递归
const maxEmbedDepth = 8

// Describe 列出 v 的所有字段，包括未导出字段
//
// 先输出自身字段，再输出嵌入结构体提升上来的字段：
//
//	✨ app.User <0xc000010000> ✨
//	👉 Name: alice
//	👉 age: 30
//	👉 ID: 42        // 来自嵌入的 Base
//
// 只有指针会输出地址。非结构体输出一行 "👉 value: v"。
func Describe(v any) string {
	var sb strings.Builder
	sb.WriteString("\n✨ ")

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		sb.WriteString("<nil> ✨\n")
		return sb.String()
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			fmt.Fprintf(&sb, "%s <nil> ✨\n", rv.Type().Elem())
			return sb.String()
		}
		fmt.Fprintf(&sb, "%s <%#x> ✨\n", rv.Type().Elem(), rv.Pointer())
		rv = rv.Elem()
	} else {
		fmt.Fprintf(&sb, "%s ✨\n", rv.Type())
	}

	if rv.Kind() != reflect.Struct {
		writeProperty(&sb, "value", describeValue(rv))
		return sb.String()
	}
	describeStruct(&sb, rv, 0)
	return sb.String()
}

func describeStruct(sb *strings.Builder, rv reflect.Value, depth int) {
	t := rv.Type()
	var embedded []int
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous && depth < maxEmbedDepth && isStructLike(f.Type) {
			embedded = append(embedded, i)
			continue
		}
		writeProperty(sb, f.Name, describeValue(rv.Field(i)))
	}

	for _, i := range embedded {
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				writeProperty(sb, t.Field(i).Name, "<nil>")
				continue
			}
			fv = fv.Elem()
		}
		describeStruct(sb, fv, depth+1)
	}
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// describeValue 导出字段走 Render（支持 Stringer/error），未导出字段交给 fmt 直接读取
func describeValue(fv reflect.Value) string {
	if fv.CanInterface() {
		return Render(fv.Interface())
	}
	return fmt.Sprint(fv)
}

func writeProperty(sb *strings.Builder, name, value string) {
	sb.WriteString("👉 ")
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteByte('\n')
}
