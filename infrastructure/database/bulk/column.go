package bulk

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
	KindInteger
	KindBigInteger
	KindJSON
	KindDate
	KindTimestamp
	KindEnum
	KindBoolean
)

// Column descreve como um valor é convertido e tipado no SQL
type Column struct {
	Name     string
	Kind     ColumnKind
	EnumType string
}

func Text(name string) Column       { return Column{Name: name, Kind: KindText} }
func Numeric(name string) Column    { return Column{Name: name, Kind: KindNumeric} }
func Integer(name string) Column    { return Column{Name: name, Kind: KindInteger} }
func BigInteger(name string) Column { return Column{Name: name, Kind: KindBigInteger} }
func JSON(name string) Column       { return Column{Name: name, Kind: KindJSON} }
func Date(name string) Column       { return Column{Name: name, Kind: KindDate} }
func Timestamp(name string) Column  { return Column{Name: name, Kind: KindTimestamp} }
func Boolean(name string) Column    { return Column{Name: name, Kind: KindBoolean} }

func Enum(name, enumType string) Column {
	return Column{Name: name, Kind: KindEnum, EnumType: enumType}
}

// Cast retorna o tipo usado no cast explícito do placeholder, vazio para texto
func (c Column) Cast() string {
	switch c.Kind {
	case KindNumeric:
		return "numeric"
	case KindInteger:
		return "integer"
	case KindBigInteger:
		return "bigint"
	case KindJSON:
		return "jsonb"
	case KindDate:
		return "date"
	case KindTimestamp:
		return "timestamptz"
	case KindEnum:
		return c.EnumType
	case KindBoolean:
		return "boolean"
	}
	return ""
}

// Coerce converte o valor vindo da plataforma para o tipo Go aceito pelo driver
func (c Column) Coerce(value any) (any, error) {
	value = deref(value)
	if value == nil {
		return nil, nil
	}

	switch c.Kind {
	case KindText, KindEnum:
		return coerceText(value), nil
	case KindNumeric:
		return coerceNumeric(value)
	case KindInteger, KindBigInteger:
		return coerceInteger(value)
	case KindJSON:
		return coerceJSON(value)
	case KindDate:
		return coerceDate(value)
	case KindTimestamp:
		return coerceTimestamp(value)
	case KindBoolean:
		return coerceBoolean(value)
	}

	return nil, fmt.Errorf("tipo de coluna desconhecido para %s", c.Name)
}

func deref(value any) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

func coerceText(value any) any {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func coerceNumeric(value any) (any, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("valor numérico inválido %q: %w", v, err)
		}
		return d, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	}
	return nil, fmt.Errorf("valor numérico não suportado: %T", value)
}

func coerceInteger(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("valor inteiro com casas decimais: %v", v)
		}
		return int64(v), nil
	case decimal.Decimal:
		if !v.IsInteger() {
			return nil, fmt.Errorf("valor inteiro com casas decimais: %s", v)
		}
		return v.IntPart(), nil
	case json.Number:
		return coerceInteger(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("valor inteiro inválido %q: %w", v, err)
		}
		return coerceInteger(d)
	}
	return nil, fmt.Errorf("valor inteiro não suportado: %T", value)
}

func coerceJSON(value any) (any, error) {
	switch v := value.(type) {
	case string:
		if jsonAPI.Valid([]byte(v)) {
			return v, nil
		}
	case []byte:
		if jsonAPI.Valid(v) {
			return string(v), nil
		}
		value = string(v)
	}

	b, err := jsonAPI.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar JSON: %w", err)
	}
	return string(b), nil
}

func coerceDate(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.DateOnly), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		if len(s) >= len(time.DateOnly) {
			if d, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
				return d.Format(time.DateOnly), nil
			}
		}
		return nil, fmt.Errorf("data inválida %q", v)
	}
	return nil, fmt.Errorf("data não suportada: %T", value)
}

func coerceTimestamp(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil, nil
		}
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		return utils.ParseTimestamp(s)
	case int64:
		return time.Unix(v, 0).UTC(), nil
	}
	return nil, fmt.Errorf("data e hora não suportada: %T", value)
}

func coerceBoolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("booleano inválido %q", v)
		}
		return b, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	}
	return nil, fmt.Errorf("booleano não suportado: %T", value)
}
