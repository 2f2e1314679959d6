package iats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateTimeLayout = "2006-01-02T15:04:05"

// Param is a single named request value.
type Param struct {
	Name  string
	Value any
}

// Parameters is an ordered set of request values. Values may be strings,
// integers, floats, bools, decimal.Decimal or time.Time.
type Parameters []Param

// ParametersFromMap builds Parameters from m, ordered by name.
func ParametersFromMap(m map[string]any) Parameters {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	p := make(Parameters, 0, len(m))
	for _, name := range names {
		p = append(p, Param{Name: name, Value: m[name]})
	}
	return p
}

// Set replaces the value of name, or appends it. It returns the updated
// Parameters.
func (p Parameters) Set(name string, value any) Parameters {
	for i := range p {
		if p[i].Name == name {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Name: name, Value: value})
}

// Get returns the value of name.
func (p Parameters) Get(name string) (any, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}

// Text returns the wire form of name, or "" when it is absent.
func (p Parameters) Text(name string) string {
	v, ok := p.Get(name)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Clone returns a copy that shares no backing storage with p.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	out := make(Parameters, len(p))
	copy(out, p)
	return out
}

// FormatValue renders v as it is sent on the wire.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return decimal.NewFromFloat32(v).String()
	case float64:
		return decimal.NewFromFloat(v).String()
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.Format(dateTimeLayout)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// amountFields are normalised to two decimal places.
var amountFields = map[string]bool{
	"total":  true,
	"amount": true,
}

// fill builds the wire parameters for fields, in order. Fields the caller did
// not supply are sent empty.
func fill(fields []string, p Parameters) (Parameters, error) {
	out := make(Parameters, 0, len(fields))
	for _, name := range fields {
		value := p.Text(name)
		if amountFields[name] && strings.TrimSpace(value) != "" {
			amount, err := decimal.NewFromString(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("%w: %s %q is not an amount", ErrInvalidParameter, name, value)
			}
			value = amount.StringFixed(2)
		}
		out = append(out, Param{Name: name, Value: value})
	}
	return out, nil
}
