package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is a schemaless record as stored in (and returned from) a
// collection. Payloads, stored documents, and serialized responses all
// share this shape.
type Document = map[string]any

// NumericRule declares a numeric field and the bound it must satisfy.
type NumericRule struct {
	Field string
	// Positive requires a strictly positive value; otherwise zero is
	// allowed and only negative values are rejected.
	Positive bool
}

// Schema parameterizes the ownership-scoped CRUD protocol for one
// resource collection. Every instance shares the same service,
// repository, and handler implementations.
type Schema struct {
	Name       string // singular JSON envelope key, e.g. "project"
	Plural     string // collection name and list envelope key
	Title      string // capitalized form used in messages
	Required   []string
	Numeric    []NumericRule
	// Fields restricts which payload keys are persisted at creation.
	// Nil means every payload key is kept (free-form resources).
	Fields []string
	// Defaults are applied at creation for keys absent from the payload.
	Defaults Document
	// Updatable restricts which payload keys a partial update may touch.
	// Nil means all keys except the protected ones.
	Updatable []string
}

// protectedFields can never be written through an update payload.
var protectedFields = map[string]struct{}{
	"_id":       {},
	"id":        {},
	"createdBy": {},
	"createdAt": {},
}

var (
	ProjectSchema = Schema{
		Name:     "project",
		Plural:   "projects",
		Title:    "Project",
		Required: []string{"projectName", "deadline"},
	}

	BudgetSchema = Schema{
		Name:     "budget",
		Plural:   "budgets",
		Title:    "Budget",
		Required: []string{"budgetName", "projectId", "projectName", "totalBudget"},
		Numeric: []NumericRule{
			{Field: "totalBudget"},
			{Field: "developmentCost"},
			{Field: "designCost"},
			{Field: "testingCost"},
			{Field: "deploymentCost"},
			{Field: "maintenanceCost"},
			{Field: "thirdPartyCost"},
		},
		Fields: []string{
			"budgetName", "projectId", "projectName", "totalBudget",
			"developmentCost", "designCost", "testingCost", "deploymentCost",
			"maintenanceCost", "thirdPartyCost", "currency", "notes",
		},
		Defaults: Document{
			"developmentCost": float64(0),
			"designCost":      float64(0),
			"testingCost":     float64(0),
			"deploymentCost":  float64(0),
			"maintenanceCost": float64(0),
			"thirdPartyCost":  float64(0),
			"currency":        "INR",
			"notes":           "",
		},
	}

	LeadSchema = Schema{
		Name:     "lead",
		Plural:   "leads",
		Title:    "Lead",
		Required: []string{"name", "mobile", "email"},
		Fields: []string{
			"name", "email", "mobile", "address", "company", "designation",
			"source", "notes", "status", "nextFollowUp", "assignedTo",
			"fileName",
		},
		Defaults: Document{
			"status":     "New",
			"assignedTo": "Not Assigned",
		},
		Updatable: []string{"status", "nextFollowUp", "assignedTo", "notes", "source"},
	}

	PaymentSchema = Schema{
		Name:     "payment",
		Plural:   "payments",
		Title:    "Payment",
		Required: []string{"customer", "amount", "date"},
		Numeric:  []NumericRule{{Field: "amount", Positive: true}},
	}
)

// ValidateCreate checks required-field presence and coerces numeric
// fields in place. It returns a Document ready to persist (owner and
// timestamps are stamped by the service) or an *APIError.
func (s Schema) ValidateCreate(payload Document) (Document, error) {
	var missing []string
	for _, f := range s.Required {
		if isEmpty(payload[f]) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, MissingFields(missing...)
	}

	if err := s.coerceNumeric(payload); err != nil {
		return nil, err
	}

	doc := Document{}
	if s.Fields == nil {
		for k, v := range payload {
			if _, protected := protectedFields[k]; protected {
				continue
			}
			doc[k] = v
		}
	} else {
		for _, f := range s.Fields {
			if v, ok := payload[f]; ok {
				doc[f] = v
			}
		}
	}
	for k, v := range s.Defaults {
		if isEmpty(doc[k]) {
			doc[k] = v
		}
	}

	for _, f := range s.Required {
		if v, ok := doc[f].(string); ok {
			doc[f] = strings.TrimSpace(v)
		}
	}
	return doc, nil
}

// ValidateUpdate filters the payload down to updatable keys and coerces
// any numeric fields present. An empty result means the payload had
// nothing applicable to change.
func (s Schema) ValidateUpdate(payload Document) (Document, error) {
	if err := s.coerceNumeric(payload); err != nil {
		return nil, err
	}

	set := Document{}
	if s.Updatable == nil {
		for k, v := range payload {
			if _, protected := protectedFields[k]; protected {
				continue
			}
			set[k] = v
		}
	} else {
		for _, f := range s.Updatable {
			if v, ok := payload[f]; ok {
				set[f] = v
			}
		}
	}
	return set, nil
}

// coerceNumeric rewrites each declared numeric field present in the
// payload as a float64, rejecting malformed and out-of-range values.
func (s Schema) coerceNumeric(payload Document) error {
	for _, rule := range s.Numeric {
		raw, ok := payload[rule.Field]
		if !ok || raw == nil {
			continue
		}
		value, err := toFloat(raw)
		if err != nil {
			if rule.Positive {
				return &APIError{Code: CodeInvalidAmount, Message: fmt.Sprintf("%s must be a valid positive number", rule.Field)}
			}
			return &APIError{Code: CodeInvalidAmountFormat, Message: fmt.Sprintf("%s must be a valid number", rule.Field)}
		}
		if rule.Positive && value <= 0 {
			return &APIError{Code: CodeInvalidAmount, Message: fmt.Sprintf("%s must be a valid positive number", rule.Field)}
		}
		if !rule.Positive && value < 0 {
			return &APIError{Code: CodeInvalidAmount, Message: fmt.Sprintf("%s must be a positive number", rule.Field)}
		}
		payload[rule.Field] = value
	}
	return nil
}

// toFloat accepts JSON numbers and numeric strings. Booleans and other
// types are rejected.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// isEmpty reports whether a required field should be treated as absent.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
