package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"feedback-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// valueToBSON converts a JSON value to the native BSON shape the driver
// stores: objects become bson.D so key order survives.
func valueToBSON(v models.Value) (interface{}, error) {
	switch v.Kind() {
	case models.KindNull:
		return nil, nil
	case models.KindBool:
		return v.AsBool(), nil
	case models.KindNumber:
		return numberToBSON(v.AsNumber().String())
	case models.KindString:
		return v.AsString(), nil
	case models.KindArray:
		arr := make(bson.A, 0, len(v.Items()))
		for _, item := range v.Items() {
			b, err := valueToBSON(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, b)
		}
		return arr, nil
	case models.KindObject:
		doc := make(bson.D, 0, len(v.Members()))
		for _, m := range v.Members() {
			b, err := valueToBSON(m.Value)
			if err != nil {
				return nil, err
			}
			doc = append(doc, bson.E{Key: m.Key, Value: b})
		}
		return doc, nil
	}
	return nil, fmt.Errorf("unsupported value kind %s", v.Kind())
}

// numberToBSON stores integers as int32/int64 and everything else as a double.
// Integers beyond int64 and non-finite doubles fall back to Decimal128, and
// to a double again when Decimal128 cannot hold the digits.
func numberToBSON(text string) (interface{}, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
		return i, nil
	}
	if !strings.ContainsAny(text, ".eE") {
		return decimalFromText(text)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err == nil && !math.IsInf(f, 0) {
		return f, nil
	}
	return decimalFromText(text)
}

func decimalFromText(text string) (interface{}, error) {
	d, err := bson.ParseDecimal128(text)
	if err == nil {
		return d, nil
	}
	// ParseFloat reports range errors alongside ±Inf, which is stored as is.
	f, ferr := strconv.ParseFloat(text, 64)
	if ferr != nil && !errors.Is(ferr, strconv.ErrRange) {
		return nil, fmt.Errorf("number %s out of range: %w", text, err)
	}
	return f, nil
}

// valueFromRaw converts a stored BSON value back to a JSON value.
func valueFromRaw(rv bson.RawValue) (models.Value, error) {
	switch rv.Type {
	case bson.TypeNull, bson.TypeUndefined:
		return models.Null(), nil
	case bson.TypeBoolean:
		return models.Bool(rv.Boolean()), nil
	case bson.TypeInt32:
		return models.Int(int64(rv.Int32())), nil
	case bson.TypeInt64:
		return models.Int(rv.Int64()), nil
	case bson.TypeDouble:
		f := rv.Double()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return models.Null(), nil
		}
		return models.Float(f), nil
	case bson.TypeDecimal128:
		text := rv.Decimal128().String()
		if !json.Valid([]byte(text)) {
			return models.Null(), nil
		}
		return models.Number(json.Number(text)), nil
	case bson.TypeString:
		return models.String(rv.StringValue()), nil
	case bson.TypeObjectID:
		return models.String(rv.ObjectID().Hex()), nil
	case bson.TypeDateTime:
		return models.String(time.UnixMilli(rv.DateTime()).UTC().Format(time.RFC3339Nano)), nil
	case bson.TypeArray:
		values, err := rv.Array().Values()
		if err != nil {
			return models.Value{}, err
		}
		items := make([]models.Value, 0, len(values))
		for _, item := range values {
			v, err := valueFromRaw(item)
			if err != nil {
				return models.Value{}, err
			}
			items = append(items, v)
		}
		return models.Array(items...), nil
	case bson.TypeEmbeddedDocument:
		elems, err := rv.Document().Elements()
		if err != nil {
			return models.Value{}, err
		}
		members := make([]models.Member, 0, len(elems))
		for _, elem := range elems {
			v, err := valueFromRaw(elem.Value())
			if err != nil {
				return models.Value{}, err
			}
			members = append(members, models.Member{Key: elem.Key(), Value: v})
		}
		return models.Object(members...), nil
	}
	return models.Value{}, fmt.Errorf("unsupported BSON type %s", rv.Type)
}
