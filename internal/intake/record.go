package intake

// Field names a required booking slot.
type Field string

const (
	FieldName  Field = "name"
	FieldNRIC  Field = "nric"
	FieldEmail Field = "email"
	FieldDate  Field = "date"
	FieldTime  Field = "time"
)

// RequiredFields is the canonical field order. Missing-field prompts and
// completeness checks always follow this order.
var RequiredFields = []Field{FieldName, FieldNRIC, FieldEmail, FieldDate, FieldTime}

// ExtractionResult is the partial field→value mapping pulled out of a single
// utterance. It is ephemeral: merged into the session record and discarded.
type ExtractionResult map[Field]string

// BookingRecord accumulates extracted fields across turns. A field is present
// only if its extractor matched and validated; later extractions of the same
// field overwrite earlier ones (last write wins).
type BookingRecord map[Field]string

// Merge writes every field of result into the record, overwriting existing
// entries. Merging the same result twice is a no-op the second time.
func (r BookingRecord) Merge(result ExtractionResult) {
	for field, value := range result {
		if value == "" {
			continue
		}
		r[field] = value
	}
}

// Missing returns the required fields absent from the record, in canonical
// order. An empty result means the record is complete.
func (r BookingRecord) Missing() []Field {
	var missing []Field
	for _, field := range RequiredFields {
		if r[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Complete reports whether every required field is present.
func (r BookingRecord) Complete() bool {
	return len(r.Missing()) == 0
}
