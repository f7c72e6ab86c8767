package domain

// HeaderRecord holds the entity-level fields extracted once per segment.
// Exactly one exists per valid segment.
type HeaderRecord struct {
	// EntityID is the report's identity code for the entity (e.g. a dealer number).
	EntityID string

	// Name is the entity display name after field cleaning.
	Name string

	// Contact is the raw contact string (e.g. a phone number line suffix).
	Contact string
}

// DetailRecord is one repeating per-period record within a segment.
// Count fields are kept as captured text; numeric coercion happens at
// row assembly so a bad count drops only its own row.
type DetailRecord struct {
	// Period is the reporting period key exactly as captured (e.g. "2021").
	Period string

	// CountA, CountB and CountC are the three numeric sub-fields as raw text.
	CountA string
	CountB string
	CountC string
}

// Row is the flattened join of one HeaderRecord with one DetailRecord.
// Every header field is copied onto every detail row.
type Row struct {
	// SegmentIndex records which segment produced this row.
	SegmentIndex int

	EntityID string
	Name     string
	Contact  string

	Period string
	CountA int
	CountB int
	CountC int
}
