package teamleader

import (
	"slices"
	"strings"

	"github.com/biter777/countries"
	iso6391 "github.com/emvi/iso-639-1"
)

// Fixed vocabularies accepted by the API.
var (
	// PaymentTerms are the accepted invoice payment terms. DEM terms
	// count from the end of the month.
	PaymentTerms = []string{"0D", "7D", "10D", "15D", "21D", "30D", "45D", "60D", "90D", "30DEM", "60DEM", "90DEM"}

	// VATTariffs are the accepted invoice line VAT codes: the Belgian
	// percentage tariffs plus the special regimes (intra-community,
	// export, co-contractor, intra-community services).
	VATTariffs = []string{"00", "06", "12", "21", "CM", "EX", "MC", "VCMD"}

	// Genders are the accepted contact gender markers.
	Genders = []string{"M", "F", "U"}

	// SegmentObjectTypes are the object families a segment can be
	// defined on.
	SegmentObjectTypes = []string{
		"crm_companies", "crm_contacts", "crm_todos", "crm_callbacks", "crm_meetings",
		"inv_invoices", "inv_creditnotes", "pro_projects", "sale_sales", "ticket_tickets",
	}
)

// validateEnum checks membership of a fixed vocabulary. An empty value
// means the argument was not supplied and passes.
func validateEnum(value string, allowed []string, field string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return invalidInput(field, "must be one of "+strings.Join(allowed, ", "))
	}
	return nil
}

// validateCountry checks an ISO 3166-1 alpha-2 country code. Matching
// is case-insensitive.
func validateCountry(code string) error {
	if code == "" {
		return nil
	}
	if !countries.ByName(strings.ToUpper(code)).IsValid() {
		return invalidInput("country", "not an ISO 3166-1 alpha-2 code")
	}
	return nil
}

// validateLanguage checks an ISO 639-1 language code. Matching is
// case-insensitive.
func validateLanguage(code string) error {
	if code == "" {
		return nil
	}
	if !iso6391.ValidCode(strings.ToLower(code)) {
		return invalidInput("language", "not an ISO 639-1 code")
	}
	return nil
}
