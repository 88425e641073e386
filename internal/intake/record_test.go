package intake

import (
	"reflect"
	"testing"
)

func TestMergeLastWriteWins(t *testing.T) {
	rec := BookingRecord{}
	rec.Merge(ExtractionResult{FieldName: "John Tan"})
	rec.Merge(ExtractionResult{FieldName: "Jane Lim", FieldEmail: "jane@example.com"})

	if rec[FieldName] != "Jane Lim" {
		t.Errorf("name = %q, want last-write-wins Jane Lim", rec[FieldName])
	}
	if rec[FieldEmail] != "jane@example.com" {
		t.Errorf("email = %q, want jane@example.com", rec[FieldEmail])
	}
}

func TestMergeIdempotent(t *testing.T) {
	result := ExtractionResult{FieldName: "John Tan", FieldNRIC: "S1234567A"}

	once := BookingRecord{}
	once.Merge(result)

	twice := BookingRecord{}
	twice.Merge(result)
	twice.Merge(result)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merging twice = %v, want %v", twice, once)
	}
}

func TestMergeSkipsEmptyValues(t *testing.T) {
	rec := BookingRecord{FieldName: "John Tan"}
	rec.Merge(ExtractionResult{FieldName: ""})
	if rec[FieldName] != "John Tan" {
		t.Errorf("empty merge clobbered name, got %q", rec[FieldName])
	}
}

func TestMissingCanonicalOrder(t *testing.T) {
	tests := []struct {
		name string
		rec  BookingRecord
		want []Field
	}{
		{
			name: "empty record misses everything",
			rec:  BookingRecord{},
			want: []Field{FieldName, FieldNRIC, FieldEmail, FieldDate, FieldTime},
		},
		{
			name: "name only",
			rec:  BookingRecord{FieldName: "John Tan"},
			want: []Field{FieldNRIC, FieldEmail, FieldDate, FieldTime},
		},
		{
			name: "order is canonical regardless of fill order",
			rec:  BookingRecord{FieldTime: "15:00", FieldNRIC: "S1234567A"},
			want: []Field{FieldName, FieldEmail, FieldDate},
		},
		{
			name: "complete record misses nothing",
			rec: BookingRecord{
				FieldName:  "John Tan",
				FieldNRIC:  "S1234567A",
				FieldEmail: "john@example.com",
				FieldDate:  "2025-08-15",
				FieldTime:  "15:00",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rec.Missing()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Missing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	rec := BookingRecord{
		FieldName:  "John Tan",
		FieldNRIC:  "S1234567A",
		FieldEmail: "john@example.com",
		FieldDate:  "2025-08-15",
	}
	if rec.Complete() {
		t.Fatal("record without time should not be complete")
	}
	rec[FieldTime] = "15:00"
	if !rec.Complete() {
		t.Fatal("full record should be complete")
	}
}
