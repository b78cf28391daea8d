package teamleader

import (
	"strings"
	"time"
)

// User is an account user as returned by the users endpoint.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Function string `json:"function"`
}

// Department is an administrative department of the account.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tag is a label defined in the account. Tags are created implicitly
// when an unknown tag name is attached to a contact or company.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Segment is a saved filter over one of the segmentable object types.
type Segment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Contact is a person in the CRM.
type Contact struct {
	ID          int    `json:"id"`
	Forename    string `json:"forename"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Salutation  string `json:"salutation"`
	Telephone   string `json:"telephone"`
	GSM         string `json:"gsm"`
	Website     string `json:"website"`
	Country     string `json:"country"`
	Zipcode     string `json:"zipcode"`
	City        string `json:"city"`
	Street      string `json:"street"`
	Number      string `json:"number"`
	Language    string `json:"language"`
	Gender      string `json:"gender"`
	DateOfBirth int64  `json:"dob"`
	Description string `json:"description"`
}

// FullName returns the forename and surname joined for display.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.Forename + " " + c.Surname)
}

// BornOn returns the date of birth, or the zero time when unknown.
func (c Contact) BornOn() time.Time {
	if c.DateOfBirth == 0 {
		return time.Time{}
	}
	return time.Unix(c.DateOfBirth, 0)
}

// Company is an organization in the CRM.
type Company struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	VATCode             string `json:"vat_code"`
	Telephone           string `json:"telephone"`
	Country             string `json:"country"`
	Zipcode             string `json:"zipcode"`
	City                string `json:"city"`
	Street              string `json:"street"`
	Number              string `json:"number"`
	Website             string `json:"website"`
	Description         string `json:"description"`
	AccountManagerID    int    `json:"account_manager_id"`
	LocalBusinessNumber string `json:"local_business_number"`
	BusinessType        string `json:"business_type"`
	Language            string `json:"language"`
	PaymentTerm         string `json:"payment_term"`
}
