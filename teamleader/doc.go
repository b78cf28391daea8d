// Package teamleader provides a client for the Teamleader CRM and
// invoicing API (v1).
//
// The API is a fixed set of form-POST endpoints under /api/<name>.php
// that answer with JSON. This package translates typed method calls
// into those requests, validates arguments locally before any network
// traffic, and classifies HTTP responses into typed errors.
//
// # Usage
//
// Create a client with your API group and secret:
//
//	logger := zerolog.New(os.Stdout)
//	client := teamleader.New("12345", "your-secret", logger)
//
//	ctx := context.Background()
//	id, err := client.AddContact(ctx, teamleader.ContactInput{
//		Forename: "Jane",
//		Surname:  "Doe",
//		Email:    "jane@example.com",
//	})
//
// List endpoints are paginated by the remote API in pages of 100
// records. Their methods return a lazy sequence that fetches pages on
// demand; breaking out of the loop stops further requests:
//
//	for contact, err := range client.GetContacts(ctx, teamleader.ContactQuery{}) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(contact.Email)
//	}
//
// # Error Handling
//
// Local validation failures and remote failures are distinguishable
// with errors.Is:
//
//   - ErrInvalidInput: an argument failed local validation, no request
//     was made
//   - ErrUnauthorized: HTTP 401, bad or expired credentials
//   - ErrRateLimitExceeded: HTTP 505, which this API repurposes for
//     throttling
//   - ErrBadRequest: HTTP 400
//   - ErrUnknownAPI: any other non-200 status
//
// Remote failures carry the server reason and raw body:
//
//	var apiErr *teamleader.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("status %d: %s", apiErr.StatusCode, apiErr.Message)
//	}
//
// The client performs exactly one request per call. There is no retry
// or backoff; callers that want recovery implement it themselves.
package teamleader
