package teamleader

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetUsers retrieves all users of the account. When showInactive is
// set, deactivated users are included.
func (c *Client) GetUsers(ctx context.Context, showInactive bool) ([]User, error) {
	raw, err := c.do(ctx, "getUsers", Fields{"show_inactive_users": showInactive})
	if err != nil {
		return nil, err
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}
	return users, nil
}

// GetDepartments retrieves all departments of the account.
func (c *Client) GetDepartments(ctx context.Context) ([]Department, error) {
	raw, err := c.do(ctx, "getDepartments", nil)
	if err != nil {
		return nil, err
	}

	var departments []Department
	if err := json.Unmarshal(raw, &departments); err != nil {
		return nil, fmt.Errorf("failed to parse departments: %w", err)
	}
	return departments, nil
}

// GetTags retrieves all tags defined in the account.
func (c *Client) GetTags(ctx context.Context) ([]Tag, error) {
	raw, err := c.do(ctx, "getTags", nil)
	if err != nil {
		return nil, err
	}

	var tags []Tag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	return tags, nil
}

// GetSegments retrieves the segments defined for one object type. The
// objectType must be one of SegmentObjectTypes.
func (c *Client) GetSegments(ctx context.Context, objectType string) ([]Segment, error) {
	if objectType == "" {
		return nil, invalidInput("object_type", "is required")
	}
	if err := validateEnum(objectType, SegmentObjectTypes, "object_type"); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, "getSegments", Fields{"object_type": objectType})
	if err != nil {
		return nil, err
	}

	var segments []Segment
	if err := json.Unmarshal(raw, &segments); err != nil {
		return nil, fmt.Errorf("failed to parse segments: %w", err)
	}
	return segments, nil
}

// GetBusinessTypes retrieves the names of the legal structures a
// company can have in the given country.
func (c *Client) GetBusinessTypes(ctx context.Context, country string) ([]string, error) {
	if err := validateCountry(country); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, "getBusinessTypes", Fields{"country": country})
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse business types: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names, nil
}
