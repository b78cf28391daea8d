package teamleader

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"time"
)

// CompanyInput holds the arguments for AddCompany. Name is required;
// zero-valued optional fields are left out of the request.
type CompanyInput struct {
	Name                string
	Email               string
	VATCode             string
	Telephone           string
	Country             string // ISO 3166-1 alpha-2
	Zipcode             string
	City                string
	Street              string
	Number              string
	Website             string
	Description         string
	AccountManagerID    int
	LocalBusinessNumber string // KVK in the Netherlands
	BusinessType        string // legal structure, eg NV or BVBA
	Language            string // ISO 639-1
	Tags                []string
	PaymentTerm         string // one of PaymentTerms

	AutomergeByName    bool
	AutomergeByEmail   bool
	AutomergeByVATCode bool

	CustomFields CustomFields
}

// CompanyUpdate holds the arguments for UpdateCompany. Zero-valued
// fields are left untouched remotely.
type CompanyUpdate struct {
	// TrackChanges controls whether the update is logged and shown to
	// users in the web interface. Defaults to true when nil.
	TrackChanges *bool

	Name                string
	Email               string
	VATCode             string
	Telephone           string
	Country             string
	Zipcode             string
	City                string
	Street              string
	Number              string
	Website             string
	Description         string
	AccountManagerID    int
	LocalBusinessNumber string
	BusinessType        string
	Language            string
	PaymentTerm         string
	Tags                []string
	DelTags             []string

	CustomFields CustomFields
}

// CompanyQuery filters a company search. The zero value matches all
// companies.
type CompanyQuery struct {
	// Query is matched against the company name and email address.
	Query string

	// ModifiedSince restricts results to companies added or changed
	// since that moment.
	ModifiedSince time.Time

	// Tag restricts results to companies carrying the tag.
	Tag string

	// SegmentID restricts results to a company segment.
	SegmentID int

	// CustomFieldIDs selects custom fields to include (max 10).
	CustomFieldIDs []int
}

func (q CompanyQuery) fields() Fields {
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

// AddCompany adds a company and returns its ID.
func (c *Client) AddCompany(ctx context.Context, in CompanyInput) (int, error) {
	if err := validateCountry(in.Country); err != nil {
		return 0, err
	}
	if err := validateLanguage(in.Language); err != nil {
		return 0, err
	}
	if err := validateEnum(in.PaymentTerm, PaymentTerms, "payment_term"); err != nil {
		return 0, err
	}

	f := Fields{"name": in.Name}
	setOptional(f, "email", in.Email)
	setOptional(f, "vat_code", in.VATCode)
	setOptional(f, "telephone", in.Telephone)
	setOptional(f, "country", in.Country)
	setOptional(f, "zipcode", in.Zipcode)
	setOptional(f, "city", in.City)
	setOptional(f, "street", in.Street)
	setOptional(f, "number", in.Number)
	setOptional(f, "website", in.Website)
	setOptional(f, "description", in.Description)
	setOptional(f, "local_business_number", in.LocalBusinessNumber)
	setOptional(f, "business_type", in.BusinessType)
	setOptional(f, "language", in.Language)
	setOptional(f, "payment_term", in.PaymentTerm)
	if in.AccountManagerID != 0 {
		f["account_manager_id"] = in.AccountManagerID
	}

	f["add_tag_by_string"] = strings.Join(in.Tags, ",")
	f["custom_fields"] = in.CustomFields
	f.flattenCustomFields()

	f["automerge_by_name"] = in.AutomergeByName
	f["automerge_by_email"] = in.AutomergeByEmail
	f["automerge_by_vat_code"] = in.AutomergeByVATCode

	raw, err := c.do(ctx, "addCompany", f)
	if err != nil {
		return 0, err
	}
	return decodeID(raw)
}

// UpdateCompany updates an existing company.
func (c *Client) UpdateCompany(ctx context.Context, companyID int, in CompanyUpdate) error {
	if err := validateCountry(in.Country); err != nil {
		return err
	}
	if err := validateLanguage(in.Language); err != nil {
		return err
	}
	if err := validateEnum(in.PaymentTerm, PaymentTerms, "payment_term"); err != nil {
		return err
	}

	trackChanges := true
	if in.TrackChanges != nil {
		trackChanges = *in.TrackChanges
	}

	f := Fields{
		"company_id":    companyID,
		"track_changes": trackChanges,
	}
	setOptional(f, "name", in.Name)
	setOptional(f, "email", in.Email)
	setOptional(f, "vat_code", in.VATCode)
	setOptional(f, "telephone", in.Telephone)
	setOptional(f, "country", in.Country)
	setOptional(f, "zipcode", in.Zipcode)
	setOptional(f, "city", in.City)
	setOptional(f, "street", in.Street)
	setOptional(f, "number", in.Number)
	setOptional(f, "website", in.Website)
	setOptional(f, "description", in.Description)
	setOptional(f, "local_business_number", in.LocalBusinessNumber)
	setOptional(f, "business_type", in.BusinessType)
	setOptional(f, "language", in.Language)
	setOptional(f, "payment_term", in.PaymentTerm)
	if in.AccountManagerID != 0 {
		f["account_manager_id"] = in.AccountManagerID
	}

	f["add_tag_by_string"] = strings.Join(in.Tags, ",")
	f["remove_tag_by_string"] = strings.Join(in.DelTags, ",")
	f["custom_fields"] = in.CustomFields
	f.flattenCustomFields()

	_, err := c.do(ctx, "updateCompany", f)
	return err
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, companyID int) error {
	_, err := c.do(ctx, "deleteCompany", Fields{"company_id": companyID})
	return err
}

// GetCompany fetches a single company.
func (c *Client) GetCompany(ctx context.Context, companyID int) (Company, error) {
	raw, err := c.do(ctx, "getCompany", Fields{"company_id": companyID})
	if err != nil {
		return Company{}, err
	}

	var company Company
	if err := json.Unmarshal(raw, &company); err != nil {
		return Company{}, fmt.Errorf("failed to parse company: %w", err)
	}
	return company, nil
}

// GetCompanies searches companies and returns a lazy sequence over the
// results. Pages of 100 records are fetched on demand; breaking out of
// the loop stops further requests. Each call starts a fresh search.
func (c *Client) GetCompanies(ctx context.Context, query CompanyQuery) iter.Seq2[Company, error] {
	return pages[Company](ctx, c, "getCompanies", query.fields())
}

// AllCompanies collects a company search into a slice.
func (c *Client) AllCompanies(ctx context.Context, query CompanyQuery) ([]Company, error) {
	return collect(c.GetCompanies(ctx, query))
}
