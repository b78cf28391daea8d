package teamleader

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// InvoiceLine is one line of an invoice. Description, Amount, VAT and
// Price are required; ProductID, Account and Subtitle are optional.
type InvoiceLine struct {
	Description string
	Amount      float64
	VAT         string // one of VATTariffs
	Price       float64
	ProductID   int
	Account     int // bookkeeping account ID
	Subtitle    string
}

func (l InvoiceLine) validate() error {
	if l.Description == "" {
		return invalidInput("invoice_lines", "fields description, amount, vat and price are required for each line")
	}
	if l.VAT == "" {
		return invalidInput("invoice_lines", "fields description, amount, vat and price are required for each line")
	}
	return validateEnum(l.VAT, VATTariffs, "vat")
}

// InvoiceInput holds the arguments for AddInvoice. Exactly one of
// ContactID and CompanyID must be set.
type InvoiceInput struct {
	// DepartmentID is the department the invoice is added to.
	DepartmentID int

	ContactID int
	CompanyID int

	ForAttentionOf string
	PaymentTerm    string // one of PaymentTerms
	Lines          []InvoiceLine

	// Draft inserts the invoice as a draft instead of booking it.
	Draft bool

	// LayoutID selects a custom invoice layout.
	LayoutID int

	// Date is the invoice date; the API defaults it to today.
	Date *time.Time

	PONumber    string
	DirectDebit bool
	Comments    string

	// ForceSetNumber forces the invoice number.
	ForceSetNumber int

	CustomFields CustomFields
}

// AddInvoice adds an invoice and returns its ID. Invoice lines are
// flattened into numbered fields (description_1, price_1, ...) as the
// API has no nested structures.
func (c *Client) AddInvoice(ctx context.Context, in InvoiceInput) (int, error) {
	if in.ContactID == 0 && in.CompanyID == 0 {
		return 0, invalidInput("", "one of contact_id or company_id is required")
	}
	if in.ContactID != 0 && in.CompanyID != 0 {
		return 0, invalidInput("", "only one of contact_id or company_id can be set")
	}
	if err := validateEnum(in.PaymentTerm, PaymentTerms, "payment_term"); err != nil {
		return 0, err
	}
	for _, line := range in.Lines {
		if err := line.validate(); err != nil {
			return 0, err
		}
	}

	f := Fields{
		"sys_department_id": in.DepartmentID,
		"draft_invoice":     in.Draft,
		"direct_debit":      in.DirectDebit,
	}
	if in.ContactID != 0 {
		f["contact_or_company"] = "contact"
		f["contact_or_company_id"] = in.ContactID
	} else {
		f["contact_or_company"] = "company"
		f["contact_or_company_id"] = in.CompanyID
	}
	setOptional(f, "for_attention_of", in.ForAttentionOf)
	setOptional(f, "payment_term", in.PaymentTerm)
	setOptional(f, "po_number", in.PONumber)
	setOptional(f, "comments", in.Comments)
	if in.LayoutID != 0 {
		f["layout_id"] = in.LayoutID
	}
	if in.ForceSetNumber != 0 {
		f["force_set_number"] = in.ForceSetNumber
	}
	if in.Date != nil {
		f["date"] = in.Date.Format("02/01/2006")
	}

	f["custom_fields"] = in.CustomFields
	f.flattenCustomFields()

	for i, line := range in.Lines {
		n := strconv.Itoa(i + 1)
		f["description_"+n] = line.Description
		f["price_"+n] = line.Price
		f["amount_"+n] = line.Amount
		f["vat_"+n] = line.VAT
		if line.ProductID != 0 {
			f["product_id_"+n] = line.ProductID
		}
		if line.Account != 0 {
			f["account_"+n] = line.Account
		}
		if line.Subtitle != "" {
			f["subtitle_"+n] = line.Subtitle
		}
	}

	raw, err := c.do(ctx, "addInvoice", f)
	if err != nil {
		return 0, err
	}
	return decodeID(raw)
}

// VATRateForLiability translates a customer's VAT liability into the
// VAT code for an invoice line. The tariff is the default percentage
// tariff ("21" when empty); service marks intra-community services,
// which use VCMD instead of CM.
func VATRateForLiability(liability, tariff string, service bool) (string, error) {
	if tariff == "" {
		tariff = "21"
	}
	if len(tariff) == 1 {
		tariff = "0" + tariff
	}
	switch tariff {
	case "00", "06", "12", "21":
	default:
		return "", invalidInput("tariff", "invalid VAT tariff")
	}

	switch liability {
	case "intra_community_eu":
		if service {
			return "VCMD", nil
		}
		return "CM", nil
	case "vat_liable", "unknown", "private_person":
		return tariff, nil
	case "outside_eu":
		return "EX", nil
	case "not_vat_liable":
		return "00", nil
	case "contractant":
		return "MC", nil
	default:
		return "", invalidInput("customer_vat_liability", "unknown liability")
	}
}

// InvoicePaymentTerm translates a customer payment-term setting such
// as "30_days" or "30_end_month" into the invoice payment-term code.
func InvoicePaymentTerm(customerTerm string) (string, error) {
	term := strings.ReplaceAll(customerTerm, "_days", "D")
	term = strings.ReplaceAll(term, "_end_month", "DEM")
	if err := validateEnum(term, PaymentTerms, "customer_payment_term"); err != nil || term == "" {
		return "", invalidInput("customer_payment_term", "unknown payment term")
	}
	return term, nil
}
