package domain

// FamilyUnion links a set of persons as partners.
// It carries no privacy tier of its own; visibility is structural.
type FamilyUnion struct {
	Record
	PartnerIDs []string `json:"partner_ids"`
	StartDate  string   `json:"start_date,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// ParentChildLink binds a person to a family union as a child.
// Like FamilyUnion it is a structural record.
type ParentChildLink struct {
	Record
	UnionID string `json:"union_id"`
	ChildID string `json:"child_id"`
	// Order is the child's position among siblings, 1-based. 0 means unknown.
	Order int `json:"order,omitempty"`
}
