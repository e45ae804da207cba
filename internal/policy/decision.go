package policy

// Field names a single serializable attribute of a record. Values match the
// JSON keys the API emits.
type Field = string

// Person fields.
const (
	FieldID              Field = "id"
	FieldFullName        Field = "full_name"
	FieldGeneration      Field = "generation"
	FieldBranch          Field = "branch"
	FieldLiving          Field = "living"
	FieldBirthDate       Field = "birth_date"
	FieldDeathDate       Field = "death_date"
	FieldBiography       Field = "biography"
	FieldNotes           Field = "notes"
	FieldTier            Field = "tier"
	FieldPhone           Field = "phone"
	FieldEmail           Field = "email"
	FieldMessagingHandle Field = "messaging_handle"
	FieldSocialURL       Field = "social_url"
	FieldAddress         Field = "address"
)

// Common record fields.
const (
	FieldCreatedAt Field = "created_at"
	FieldUpdatedAt Field = "updated_at"
)

// Profile fields.
const (
	FieldDisplayName Field = "display_name"
	FieldRole        Field = "role"
	FieldPersonID    Field = "person_id"
	FieldStatus      Field = "status"
	FieldIsRoot      Field = "is_root"
	FieldLastLoginAt Field = "last_login_at"
)

// FieldSet is an immutable-by-convention set of visible field names.
type FieldSet map[Field]struct{}

// NewFieldSet builds a set from the given field names.
func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Contains reports whether s includes every field of other.
func (s FieldSet) Contains(other FieldSet) bool {
	for f := range other {
		if !s.Has(f) {
			return false
		}
	}
	return true
}

// Union returns a new set with the fields of both sets.
func (s FieldSet) Union(other FieldSet) FieldSet {
	out := make(FieldSet, len(s)+len(other))
	for f := range s {
		out[f] = struct{}{}
	}
	for f := range other {
		out[f] = struct{}{}
	}
	return out
}

// ContactFields is the contact bundle: the fields that must never reach an
// anonymous reader.
var ContactFields = NewFieldSet(
	FieldPhone,
	FieldEmail,
	FieldMessagingHandle,
	FieldSocialURL,
	FieldAddress,
)

// Decision is the outcome of a single access check. Deny is a value, not an
// error; callers must treat it as normal control flow.
type Decision struct {
	Allowed bool
	// Fields is the visible field set when Allowed. Nil means no field-level
	// restriction (structural records expose all their fields).
	Fields FieldSet
	// Excluded names fields hidden even when Fields is nil. It carries the
	// unconditional contact exclusion for records that inherit a person's
	// classification and have no field set of their own.
	Excluded FieldSet
}

// Deny is the denying decision.
func Deny() Decision {
	return Decision{}
}

// Allow builds an allowing decision restricted to the given fields.
func Allow(fields FieldSet) Decision {
	return Decision{Allowed: true, Fields: fields}
}

// AllowAll builds an allowing decision with no field restriction.
func AllowAll() Decision {
	return Decision{Allowed: true}
}

// AllowExcept builds an allowing decision that hides the given fields and
// permits everything else.
func AllowExcept(excluded FieldSet) Decision {
	return Decision{Allowed: true, Excluded: excluded}
}

// Visible reports whether the decision permits reading the given field.
func (d Decision) Visible(f Field) bool {
	if !d.Allowed {
		return false
	}
	if d.Excluded.Has(f) {
		return false
	}
	if d.Fields == nil {
		return true
	}
	return d.Fields.Has(f)
}

// FilterFields projects a serialized record down to the fields the decision
// allows. A denied decision yields nil.
func FilterFields(d Decision, record map[string]any) map[string]any {
	if !d.Allowed {
		return nil
	}
	if d.Fields == nil && d.Excluded == nil {
		return record
	}
	if d.Fields == nil {
		out := make(map[string]any, len(record))
		for k, v := range record {
			if !d.Excluded.Has(k) {
				out[k] = v
			}
		}
		return out
	}

	out := make(map[string]any, len(d.Fields))
	for k, v := range record {
		if d.Fields.Has(k) && !d.Excluded.Has(k) {
			out[k] = v
		}
	}
	return out
}
