package docjson

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocument_ObjectIDMirroredAsID(t *testing.T) {
	oid := primitive.NewObjectID()

	out := Document(map[string]any{"_id": oid, "budgetName": "Website"})

	if out["_id"] != oid.Hex() {
		t.Fatalf("expected _id %q, got %v", oid.Hex(), out["_id"])
	}
	if out["id"] != oid.Hex() {
		t.Fatalf("expected id mirror %q, got %v", oid.Hex(), out["id"])
	}
	if out["budgetName"] != "Website" {
		t.Fatalf("expected budgetName to pass through, got %v", out["budgetName"])
	}
}

func TestDocument_TimestampsAsRFC3339(t *testing.T) {
	created := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	out := Document(map[string]any{
		"createdAt": primitive.NewDateTimeFromTime(created),
		"updatedAt": created,
	})

	want := "2024-03-15T10:30:00Z"
	if out["createdAt"] != want {
		t.Fatalf("expected createdAt %q, got %v", want, out["createdAt"])
	}
	if out["updatedAt"] != want {
		t.Fatalf("expected updatedAt %q, got %v", want, out["updatedAt"])
	}
}

func TestDocument_NestedStructures(t *testing.T) {
	oid := primitive.NewObjectID()

	out := Document(map[string]any{
		"meta": bson.M{"ref": oid},
		"tags": bson.A{"urgent", bson.M{"by": oid}},
		"pair": bson.D{{Key: "left", Value: oid}},
	})

	meta, ok := out["meta"].(map[string]any)
	if !ok || meta["ref"] != oid.Hex() {
		t.Fatalf("expected nested map with hex ref, got %#v", out["meta"])
	}

	tags, ok := out["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %#v", out["tags"])
	}
	if tags[0] != "urgent" {
		t.Fatalf("expected tags[0] urgent, got %v", tags[0])
	}
	inner, ok := tags[1].(map[string]any)
	if !ok || inner["by"] != oid.Hex() {
		t.Fatalf("expected nested map in array, got %#v", tags[1])
	}

	pair, ok := out["pair"].(map[string]any)
	if !ok || pair["left"] != oid.Hex() {
		t.Fatalf("expected bson.D converted to map, got %#v", out["pair"])
	}
}

func TestDocument_ScalarsPassThrough(t *testing.T) {
	in := map[string]any{
		"totalBudget": 1500.5,
		"active":      true,
		"notes":       nil,
	}

	out := Document(in)

	if !reflect.DeepEqual(out, in) {
		t.Fatalf("expected scalars unchanged, got %#v", out)
	}
}

func TestDocument_Nil(t *testing.T) {
	if Document(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}
