package classify

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dbsmedya/goschema/internal/document"
)

func TestClassify(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name     string
		value    interface{}
		expected Tag
	}{
		{"nil", nil, TagNull},
		{"bson null", primitive.Null{}, TagNull},
		{"bool", true, TagBool},
		{"int", 42, TagInt},
		{"int32", int32(7), TagInt},
		{"int64", int64(-9), TagInt},
		{"uint16", uint16(3), TagInt},
		{"float64", 3.14, TagDouble},
		{"float32", float32(1.5), TagDouble},
		{"decimal128", primitive.Decimal128{}, TagDecimal},
		{"string", "hello", TagString},
		{"time", time.Now(), TagDate},
		{"bson datetime", primitive.DateTime(1700000000000), TagDate},
		{"objectid", oid, TagObjectID},
		{"binary", primitive.Binary{Data: []byte{1, 2}}, TagBinary},
		{"byte slice", []byte("raw"), TagBinary},
		{"document", document.New(), TagObject},
		{"plain map", map[string]interface{}{"a": 1}, TagObject},
		{"bson M", primitive.M{"a": 1}, TagObject},
		{"bson D", primitive.D{}, TagObject},
		{"slice", []interface{}{1, 2}, TagArray},
		{"bson A", primitive.A{1, 2}, TagArray},
		{"unrecognized", struct{ X int }{1}, TagUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.value)
			if got != tt.expected {
				t.Errorf("Classify(%v) = %q, expected %q", tt.value, got, tt.expected)
			}
			// Deterministic: a second call must agree
			if again := Classify(tt.value); again != got {
				t.Errorf("Classify not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestComparable(t *testing.T) {
	comparable := []Tag{TagBool, TagInt, TagDouble, TagString, TagDate, TagObjectID}
	for _, tag := range comparable {
		if !Comparable(tag) {
			t.Errorf("expected %q to be comparable", tag)
		}
	}

	notComparable := []Tag{TagNull, TagArray, TagObject, TagBinary, TagDecimal, TagUnknown}
	for _, tag := range notComparable {
		if Comparable(tag) {
			t.Errorf("expected %q to not be comparable", tag)
		}
	}
}

func TestKeyNormalizesIntKinds(t *testing.T) {
	inputs := []interface{}{int(5), int8(5), int16(5), int32(5), int64(5), uint(5), uint8(5), uint64(5)}
	for _, v := range inputs {
		key, ok := Key(TagInt, v)
		if !ok {
			t.Fatalf("Key(TagInt, %T) not ok", v)
		}
		if key != int64(5) {
			t.Errorf("Key(TagInt, %T) = %v (%T), expected int64(5)", v, key, key)
		}
	}
}

func TestKeyNormalizesDateKinds(t *testing.T) {
	dt := primitive.DateTime(1700000000000)

	key, ok := Key(TagDate, dt)
	if !ok {
		t.Fatal("Key(TagDate, DateTime) not ok")
	}
	ts, isTime := key.(time.Time)
	if !isTime {
		t.Fatalf("expected time.Time key, got %T", key)
	}
	if !ts.Equal(dt.Time()) {
		t.Errorf("expected %v, got %v", dt.Time(), ts)
	}
}

func TestKeyRejectsContainerTags(t *testing.T) {
	if _, ok := Key(TagArray, []interface{}{1}); ok {
		t.Error("expected no comparable key for arrays")
	}
	if _, ok := Key(TagObject, document.New()); ok {
		t.Error("expected no comparable key for objects")
	}
	if _, ok := Key(TagNull, nil); ok {
		t.Error("expected no comparable key for null")
	}
}

func TestKeyRejectsMismatchedValue(t *testing.T) {
	if _, ok := Key(TagInt, "not a number"); ok {
		t.Error("expected Key to reject a string under the int tag")
	}
}

func TestLess(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var oidA, oidB primitive.ObjectID
	oidA[11] = 1
	oidB[11] = 2

	tests := []struct {
		name string
		tag  Tag
		a, b interface{}
	}{
		{"int", TagInt, int64(1), int64(2)},
		{"double", TagDouble, 1.5, 2.5},
		{"string", TagString, "abc", "abd"},
		{"bool", TagBool, false, true},
		{"date", TagDate, early, late},
		{"objectid", TagObjectID, oidA, oidB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Less(tt.tag, tt.a, tt.b) {
				t.Errorf("expected %v < %v under %q", tt.a, tt.b, tt.tag)
			}
			if Less(tt.tag, tt.b, tt.a) {
				t.Errorf("expected %v not < %v under %q", tt.b, tt.a, tt.tag)
			}
			if Less(tt.tag, tt.a, tt.a) {
				t.Errorf("expected %v not < itself under %q", tt.a, tt.tag)
			}
		})
	}
}
