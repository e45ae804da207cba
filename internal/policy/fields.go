package policy

import "github.com/giaphaapp/giapha-server/internal/domain"

// The functions below serialize records to field maps keyed by the Field
// constants, so FilterFields can project them without reflection.

// PersonFields serializes a person for field-level filtering.
// Empty optional values are omitted so filtered output stays compact.
func PersonFields(p *domain.Person) map[string]any {
	m := map[string]any{
		FieldID:         p.ID,
		FieldFullName:   p.FullName,
		FieldGeneration: p.Generation,
		FieldLiving:     p.Living,
		FieldTier:       int(p.Tier),
		FieldCreatedAt:  p.CreatedAt,
		FieldUpdatedAt:  p.UpdatedAt,
	}
	if p.Branch != 0 {
		m[FieldBranch] = p.Branch
	}
	if p.BirthDate != "" {
		m[FieldBirthDate] = p.BirthDate
	}
	if p.DeathDate != "" {
		m[FieldDeathDate] = p.DeathDate
	}
	if p.Biography != "" {
		m[FieldBiography] = p.Biography
	}
	if p.Notes != "" {
		m[FieldNotes] = p.Notes
	}
	if p.Contact.Phone != "" {
		m[FieldPhone] = p.Contact.Phone
	}
	if p.Contact.Email != "" {
		m[FieldEmail] = p.Contact.Email
	}
	if p.Contact.MessagingHandle != "" {
		m[FieldMessagingHandle] = p.Contact.MessagingHandle
	}
	if p.Contact.SocialURL != "" {
		m[FieldSocialURL] = p.Contact.SocialURL
	}
	if p.Contact.Address != "" {
		m[FieldAddress] = p.Contact.Address
	}
	return m
}

// ProfileFields serializes a user account for field-level filtering.
// The password hash is never serialized.
func ProfileFields(u *domain.User) map[string]any {
	m := map[string]any{
		FieldID:          u.ID,
		FieldDisplayName: u.DisplayName,
		FieldRole:        string(u.Role),
		FieldEmail:       u.Email,
		FieldIsRoot:      u.IsRoot,
		FieldCreatedAt:   u.CreatedAt,
		FieldUpdatedAt:   u.UpdatedAt,
		FieldLastLoginAt: u.LastLoginAt,
	}
	if u.PersonID != "" {
		m[FieldPersonID] = u.PersonID
	}
	if u.Status != "" {
		m[FieldStatus] = string(u.Status)
	}
	return m
}
