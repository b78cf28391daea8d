package teamleader

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// ContactInput holds the arguments for AddContact. Forename, Surname
// and Email are required; zero-valued optional fields are left out of
// the request.
type ContactInput struct {
	Forename    string
	Surname     string
	Email       string
	Salutation  string
	Telephone   string
	GSM         string
	Website     string
	Country     string // ISO 3166-1 alpha-2, "BE" for Belgium
	Zipcode     string
	City        string
	Street      string
	Number      string
	Language    string // ISO 639-1, "nl" for Dutch
	Gender      string // M, F or U
	DateOfBirth *time.Time
	Description string
	Newsletter  *bool
	Tags        []string

	// AutomergeByName and AutomergeByEmail let Teamleader merge the
	// record into an existing contact with the same name or email.
	AutomergeByName  bool
	AutomergeByEmail bool

	CustomFields CustomFields

	// Tracking and TrackingLong record an activity on the new contact.
	Tracking     string
	TrackingLong string
}

// ContactUpdate holds the arguments for UpdateContact. Zero-valued
// fields are left untouched remotely.
type ContactUpdate struct {
	// TrackChanges controls whether the update is logged and shown to
	// users in the web interface. Defaults to true when nil.
	TrackChanges *bool

	Forename    string
	Surname     string
	Email       string
	Telephone   string
	GSM         string
	Website     string
	Country     string
	Zipcode     string
	City        string
	Street      string
	Number      string
	Language    string
	Gender      string
	DateOfBirth *time.Time
	Description string
	Tags        []string
	DelTags     []string

	CustomFields CustomFields

	LinkedCompanyIDs []int
}

// ContactQuery filters a contact search. The zero value matches all
// contacts.
type ContactQuery struct {
	// Query is matched against forename, surname, company name and
	// email address.
	Query string

	// ModifiedSince restricts results to contacts added or changed
	// since that moment.
	ModifiedSince time.Time

	// Tag restricts results to contacts carrying the tag.
	Tag string

	// SegmentID restricts results to a contact segment.
	SegmentID int

	// CustomFieldIDs selects custom fields to include (max 10).
	CustomFieldIDs []int
}

func (q ContactQuery) fields() Fields {
	f := Fields{}
	if q.Query != "" {
		f["searchby"] = q.Query
	}
	if !q.ModifiedSince.IsZero() {
		f["modifiedsince"] = q.ModifiedSince.Unix()
	}
	if q.Tag != "" {
		f["filter_by_tag"] = q.Tag
	}
	if q.SegmentID != 0 {
		f["segment_id"] = q.SegmentID
	}
	if len(q.CustomFieldIDs) > 0 {
		f["selected_customfields"] = joinInts(q.CustomFieldIDs)
	}
	return f
}

// AddContact adds a contact and returns its ID.
func (c *Client) AddContact(ctx context.Context, in ContactInput) (int, error) {
	if err := validateEnum(in.Gender, Genders, "gender"); err != nil {
		return 0, err
	}
	if err := validateCountry(in.Country); err != nil {
		return 0, err
	}
	if err := validateLanguage(in.Language); err != nil {
		return 0, err
	}

	f := Fields{
		"forename": in.Forename,
		"surname":  in.Surname,
		"email":    in.Email,
	}
	setOptional(f, "salutation", in.Salutation)
	setOptional(f, "telephone", in.Telephone)
	setOptional(f, "gsm", in.GSM)
	setOptional(f, "website", in.Website)
	setOptional(f, "country", in.Country)
	setOptional(f, "zipcode", in.Zipcode)
	setOptional(f, "city", in.City)
	setOptional(f, "street", in.Street)
	setOptional(f, "number", in.Number)
	setOptional(f, "language", in.Language)
	setOptional(f, "gender", in.Gender)
	setOptional(f, "description", in.Description)
	setOptional(f, "tracking", in.Tracking)
	setOptional(f, "tracking_long", in.TrackingLong)

	f["add_tag_by_string"] = strings.Join(in.Tags, ",")
	f["custom_fields"] = in.CustomFields
	f.flattenCustomFields()

	if in.DateOfBirth != nil {
		f["dob"] = in.DateOfBirth.Unix()
	}
	if in.Newsletter != nil {
		f["newsletter"] = *in.Newsletter
	}
	f["automerge_by_name"] = in.AutomergeByName
	f["automerge_by_email"] = in.AutomergeByEmail

	raw, err := c.do(ctx, "addContact", f)
	if err != nil {
		return 0, err
	}
	return decodeID(raw)
}

// UpdateContact updates an existing contact.
func (c *Client) UpdateContact(ctx context.Context, contactID int, in ContactUpdate) error {
	if err := validateEnum(in.Gender, Genders, "gender"); err != nil {
		return err
	}
	if err := validateCountry(in.Country); err != nil {
		return err
	}
	if err := validateLanguage(in.Language); err != nil {
		return err
	}

	trackChanges := true
	if in.TrackChanges != nil {
		trackChanges = *in.TrackChanges
	}

	f := Fields{
		"contact_id":    contactID,
		"track_changes": trackChanges,
	}
	setOptional(f, "forename", in.Forename)
	setOptional(f, "surname", in.Surname)
	setOptional(f, "email", in.Email)
	setOptional(f, "telephone", in.Telephone)
	setOptional(f, "gsm", in.GSM)
	setOptional(f, "website", in.Website)
	setOptional(f, "country", in.Country)
	setOptional(f, "zipcode", in.Zipcode)
	setOptional(f, "city", in.City)
	setOptional(f, "street", in.Street)
	setOptional(f, "number", in.Number)
	setOptional(f, "language", in.Language)
	setOptional(f, "gender", in.Gender)
	setOptional(f, "description", in.Description)

	f["add_tag_by_string"] = strings.Join(in.Tags, ",")
	f["remove_tag_by_string"] = strings.Join(in.DelTags, ",")
	f["custom_fields"] = in.CustomFields
	f.flattenCustomFields()

	if in.DateOfBirth != nil {
		f["dob"] = in.DateOfBirth.Unix()
	}
	if len(in.LinkedCompanyIDs) > 0 {
		f["linked_company_ids"] = joinInts(in.LinkedCompanyIDs)
	}

	_, err := c.do(ctx, "updateContact", f)
	return err
}

// DeleteContact deletes a contact.
func (c *Client) DeleteContact(ctx context.Context, contactID int) error {
	_, err := c.do(ctx, "deleteContact", Fields{"contact_id": contactID})
	return err
}

// LinkContactToCompany links a contact to a company. The function
// argument is the job title the contact holds at the company and may
// be empty.
func (c *Client) LinkContactToCompany(ctx context.Context, contactID, companyID int, function string) error {
	f := Fields{
		"contact_id": contactID,
		"company_id": companyID,
		"mode":       "link",
	}
	setOptional(f, "function", function)

	_, err := c.do(ctx, "linkContactToCompany", f)
	return err
}

// UnlinkContactFromCompany removes the link between a contact and a
// company.
func (c *Client) UnlinkContactFromCompany(ctx context.Context, contactID, companyID int) error {
	f := Fields{
		"contact_id": contactID,
		"company_id": companyID,
		"mode":       "unlink",
	}

	_, err := c.do(ctx, "linkContactToCompany", f)
	return err
}

// GetContact fetches a single contact.
func (c *Client) GetContact(ctx context.Context, contactID int) (Contact, error) {
	raw, err := c.do(ctx, "getContact", Fields{"contact_id": contactID})
	if err != nil {
		return Contact{}, err
	}

	var contact Contact
	if err := json.Unmarshal(raw, &contact); err != nil {
		return Contact{}, fmt.Errorf("failed to parse contact: %w", err)
	}
	return contact, nil
}

// GetContacts searches contacts and returns a lazy sequence over the
// results. Pages of 100 records are fetched on demand; breaking out of
// the loop stops further requests. Each call starts a fresh search.
func (c *Client) GetContacts(ctx context.Context, query ContactQuery) iter.Seq2[Contact, error] {
	return pages[Contact](ctx, c, "getContacts", query.fields())
}

// AllContacts collects a contact search into a slice.
func (c *Client) AllContacts(ctx context.Context, query ContactQuery) ([]Contact, error) {
	return collect(c.GetContacts(ctx, query))
}

// GetContactsByCompany retrieves all contacts linked to a company.
func (c *Client) GetContactsByCompany(ctx context.Context, companyID int) ([]Contact, error) {
	raw, err := c.do(ctx, "getContactsByCompany", Fields{"company_id": companyID})
	if err != nil {
		return nil, err
	}

	var contacts []Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil, fmt.Errorf("failed to parse contacts: %w", err)
	}
	return contacts, nil
}

// setOptional adds a string field only when a value was supplied.
func setOptional(f Fields, key, value string) {
	if value != "" {
		f[key] = value
	}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
