package model

import (
	"fmt"
	"math/big"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var tUint64 = reflect.TypeOf(uint64(0))

// NewRegistry returns the bson registry every client of the service must use.
// uint64 amounts and sequences are stored as Decimal128 so that values above
// math.MaxInt64 survive a round trip; mongo still compares and sorts them
// numerically.
func NewRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tUint64, bsoncodec.ValueEncoderFunc(encodeUint64))
	reg.RegisterTypeDecoder(tUint64, bsoncodec.ValueDecoderFunc(decodeUint64))
	return reg
}

func encodeUint64(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Uint64 {
		return bsoncodec.ValueEncoderError{Name: "encodeUint64", Kinds: []reflect.Kind{reflect.Uint64}, Received: val}
	}
	d, ok := primitive.ParseDecimal128FromBigInt(new(big.Int).SetUint64(val.Uint()), 0)
	if !ok {
		return fmt.Errorf("cannot encode %d as decimal128", val.Uint())
	}
	return vw.WriteDecimal128(d)
}

func decodeUint64(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Kind() != reflect.Uint64 {
		return bsoncodec.ValueDecoderError{Name: "decodeUint64", Kinds: []reflect.Kind{reflect.Uint64}, Received: val}
	}

	var u uint64
	switch vr.Type() {
	case bsontype.Decimal128:
		d, err := vr.ReadDecimal128()
		if err != nil {
			return err
		}
		u, err = decimalToUint64(d)
		if err != nil {
			return err
		}
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		if err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("negative value %d for uint64 field", i)
		}
		u = uint64(i)
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		if err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("negative value %d for uint64 field", i)
		}
		u = uint64(i)
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot decode %v into uint64", vr.Type())
	}

	val.SetUint(u)
	return nil
}

func decimalToUint64(d primitive.Decimal128) (uint64, error) {
	coefficient, exp, err := d.BigInt()
	if err != nil {
		return 0, fmt.Errorf("invalid decimal128 %s: %w", d, err)
	}

	value := new(big.Int).Set(coefficient)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs(exp))), nil)
	if exp > 0 {
		value.Mul(value, scale)
	} else if exp < 0 {
		var rem big.Int
		value.QuoRem(value, scale, &rem)
		if rem.Sign() != 0 {
			return 0, fmt.Errorf("decimal128 %s is not an integer", d)
		}
	}
	if value.Sign() < 0 || !value.IsUint64() {
		return 0, fmt.Errorf("decimal128 %s is out of uint64 range", d)
	}
	return value.Uint64(), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
