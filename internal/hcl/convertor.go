package hcl

import (
	"context"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/topicprobe/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Converter binds evaluated HCL attributes onto Go structs whose fields carry
// a `probe:"<attribute>"` tag.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeAttributes evaluates every attribute of body and writes it into the
// matching tagged field of target. Attributes without a matching field are
// rejected; fields without a matching attribute keep their current value.
func (c *Converter) DecodeAttributes(ctx context.Context, body hcl.Body, target any, evalCtx *hcl.EvalContext) error {
	logger := ctxlog.FromContext(ctx)

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	fields := make(map[string]reflect.Value)
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		tag := field.Tag.Get("probe")
		if tag == "" || tag == "-" {
			continue
		}
		fields[strings.Split(tag, ",")[0]] = structVal.Field(i)
	}

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := attrs[name]
		fieldVal, ok := fields[name]
		if !ok {
			return fmt.Errorf("%s: unsupported attribute %q", attr.NameRange, name)
		}

		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return diags
		}
		if err := c.decode(ctx, val, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("%s: attribute %q: %w", attr.NameRange, name, err)
		}
		logger.Debug("Decoded attribute.", "name", name, "type", val.Type().FriendlyName())
	}
	return nil
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)

	if val.IsNull() {
		return nil
	}
	if !val.IsWhollyKnown() {
		return fmt.Errorf("value is not known at load time")
	}

	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	if valPtr.Elem().Type() == durationType {
		d, err := ctyToDuration(val)
		if err != nil {
			return err
		}
		valPtr.Elem().SetInt(int64(d))
		return nil
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

// ctyToDuration accepts either a duration string ("250ms", "5s") or a number
// of seconds.
func ctyToDuration(val cty.Value) (time.Duration, error) {
	if val.Type() == cty.Number {
		f := val.AsBigFloat()
		f.Mul(f, big.NewFloat(float64(time.Second)))
		nanos, _ := f.Int64()
		return time.Duration(nanos), nil
	}

	strVal, err := convert.Convert(val, cty.String)
	if err != nil {
		return 0, fmt.Errorf("duration must be a string or a number of seconds, got %s", val.Type().FriendlyName())
	}
	d, err := time.ParseDuration(strVal.AsString())
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", strVal.AsString(), err)
	}
	return d, nil
}
