package domain

// Tier is the privacy classification stored on a Person.
// Higher values are strictly more restrictive.
type Tier int

const (
	// TierPublic records are readable without authentication.
	TierPublic Tier = 0
	// TierMembers records require an authenticated member.
	TierMembers Tier = 1
	// TierPrivate records are readable by admins only.
	TierPrivate Tier = 2
)

// Valid reports whether t is one of the three defined tiers.
func (t Tier) Valid() bool {
	return t >= TierPublic && t <= TierPrivate
}

// Generation bounds for a person within the lineage.
const (
	MinGeneration = 1
	MaxGeneration = 20
)

// ContactBundle holds the personally-identifying reachability fields of a
// person. Each field is independently optional; empty means unset.
type ContactBundle struct {
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	MessagingHandle string `json:"messaging_handle,omitempty"`
	SocialURL       string `json:"social_url,omitempty"`
	Address         string `json:"address,omitempty"`
}

// IsEmpty reports whether every field of the bundle is unset.
func (c ContactBundle) IsEmpty() bool {
	return c.Phone == "" && c.Email == "" && c.MessagingHandle == "" &&
		c.SocialURL == "" && c.Address == ""
}

// Person is an individual in the lineage.
type Person struct {
	Record
	FullName   string `json:"full_name"`
	Generation int    `json:"generation"` // 1..20
	Branch     int    `json:"branch,omitempty"`
	Living     bool   `json:"living"`
	BirthDate  string `json:"birth_date,omitempty"` // free-form, may be partial ("1923")
	DeathDate  string `json:"death_date,omitempty"`
	Biography  string `json:"biography,omitempty"`
	Notes      string `json:"notes,omitempty"`

	Contact ContactBundle `json:"contact"`

	Tier Tier `json:"tier"`
}

// HasContactData reports whether any contact field is set.
func (p *Person) HasContactData() bool {
	return !p.Contact.IsEmpty()
}
