package gpu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

// encode flattens fixed-size values, structs, arrays and slices of them into
// little-endian bytes in field order.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(reflect.ValueOf(v), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(field reflect.Value, buf *bytes.Buffer) error {
	switch field.Kind() {
	case reflect.Ptr:
		if field.IsNil() {
			return fmt.Errorf("gpu: cannot encode nil %s", field.Type())
		}
		return writeValue(field.Elem(), buf)
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			if err := writeValue(field.Index(i), buf); err != nil {
				return err
			}
		}
	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			if err := writeValue(field.Field(i), buf); err != nil {
				return err
			}
		}
	default:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			return fmt.Errorf("gpu: encode %s: %w", field.Type(), err)
		}
	}
	return nil
}

func parseFormat(name string) (wgpu.VertexFormat, error) {
	switch name {
	case "float":
		return wgpu.VertexFormatFloat32, nil
	case "float2":
		return wgpu.VertexFormatFloat32x2, nil
	case "float3":
		return wgpu.VertexFormatFloat32x3, nil
	case "float4":
		return wgpu.VertexFormatFloat32x4, nil
	}
	return 0, fmt.Errorf("gpu: unsupported vertex format %q", name)
}

// vertexLayout derives a buffer layout from the `layout`, `format` and
// `location` tags of a struct.
func vertexLayout(record any, step wgpu.VertexStepMode) (wgpu.VertexBufferLayout, error) {
	t := reflect.TypeOf(record)
	if t.Kind() != reflect.Struct {
		return wgpu.VertexBufferLayout{}, fmt.Errorf("gpu: vertex record must be a struct, got %s", t)
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("layout") != "" {
			format, err := parseFormat(field.Tag.Get("format"))
			if err != nil {
				return wgpu.VertexBufferLayout{}, err
			}
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if err != nil {
				return wgpu.VertexBufferLayout{}, fmt.Errorf("gpu: %s.%s location: %w", t.Name(), field.Name, err)
			}
			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}
		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    step,
		Attributes:  attributes,
	}, nil
}
