package domain

import (
	"fmt"
	"strings"
)

// FormFields is the closed union of per-kind field payloads. Each variant carries the
// fields its form collects; decoding and validation happen at the boundary, so records
// inside the store are always structurally valid for their kind.
type FormFields interface {
	// FormKind returns the discriminant of the variant.
	FormKind() FormKind
	// Values returns the variant's fields as a flat map keyed by their wire names.
	Values() map[string]string
	// Validate checks the variant's required fields and returns a ValidationError
	// naming the first missing one.
	Validate() error
}

// ValidationError reports a required field that is missing for a given form kind.
// The local store is untouched when validation fails.
type ValidationError struct {
	Kind  FormKind
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form %q is missing required field %q", e.Kind, e.Field)
}

// requireFields returns a ValidationError for the first empty required field.
func requireFields(kind FormKind, values map[string]string, required ...string) error {
	for _, field := range required {
		if strings.TrimSpace(values[field]) == "" {
			return &ValidationError{Kind: kind, Field: field}
		}
	}
	return nil
}

// LeadFields holds the quick-contact lead form payload.
type LeadFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (f LeadFields) FormKind() FormKind { return KindLead }

func (f LeadFields) Values() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"message": f.Message,
	}
}

func (f LeadFields) Validate() error {
	return requireFields(KindLead, f.Values(), "name", "email", "phone", "message")
}

// ContactFields holds the full contact form payload.
type ContactFields struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Interest string `json:"interest"`
}

func (f ContactFields) FormKind() FormKind { return KindContact }

func (f ContactFields) Values() map[string]string {
	return map[string]string{
		"name":     f.Name,
		"email":    f.Email,
		"phone":    f.Phone,
		"company":  f.Company,
		"subject":  f.Subject,
		"message":  f.Message,
		"interest": f.Interest,
	}
}

func (f ContactFields) Validate() error {
	return requireFields(KindContact, f.Values(), "name", "email", "subject", "message")
}

// BriefingFields holds the project briefing form payload. ProjectType is stored locally
// under its camelCase wire name and renamed to project_type for the remote schema.
type BriefingFields struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	ProjectType  string `json:"projectType"`
	Budget       string `json:"budget"`
	Timeline     string `json:"timeline"`
	Description  string `json:"description"`
	Features     string `json:"features"`
	Integrations string `json:"integrations"`
}

func (f BriefingFields) FormKind() FormKind { return KindBriefing }

func (f BriefingFields) Values() map[string]string {
	return map[string]string{
		"name":         f.Name,
		"email":        f.Email,
		"phone":        f.Phone,
		"company":      f.Company,
		"projectType":  f.ProjectType,
		"budget":       f.Budget,
		"timeline":     f.Timeline,
		"description":  f.Description,
		"features":     f.Features,
		"integrations": f.Integrations,
	}
}

func (f BriefingFields) Validate() error {
	return requireFields(KindBriefing, f.Values(), "name", "email", "phone", "company")
}

// SessionFields holds a visitor session record. Sessions are local-only: they are never
// synced to the remote backend and are excluded from the customer-service views.
type SessionFields struct {
	SessionID string `json:"sessionId"`
	Page      string `json:"page"`
	Locale    string `json:"locale"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

func (f SessionFields) FormKind() FormKind { return KindSession }

func (f SessionFields) Values() map[string]string {
	return map[string]string{
		"sessionId": f.SessionID,
		"page":      f.Page,
		"locale":    f.Locale,
		"userAgent": f.UserAgent,
		"referrer":  f.Referrer,
	}
}

func (f SessionFields) Validate() error {
	return requireFields(KindSession, f.Values(), "sessionId", "page")
}

// FieldsFromValues reconstructs the typed variant for a kind from a flat value map.
// Unknown keys are ignored; missing keys yield empty fields. It is the inverse of
// Values and is used when decoding records from storage or request bodies.
func FieldsFromValues(kind FormKind, values map[string]string) (FormFields, error) {
	switch kind {
	case KindLead:
		return LeadFields{
			Name:    values["name"],
			Email:   values["email"],
			Phone:   values["phone"],
			Message: values["message"],
		}, nil
	case KindContact:
		return ContactFields{
			Name:     values["name"],
			Email:    values["email"],
			Phone:    values["phone"],
			Company:  values["company"],
			Subject:  values["subject"],
			Message:  values["message"],
			Interest: values["interest"],
		}, nil
	case KindBriefing:
		return BriefingFields{
			Name:         values["name"],
			Email:        values["email"],
			Phone:        values["phone"],
			Company:      values["company"],
			ProjectType:  values["projectType"],
			Budget:       values["budget"],
			Timeline:     values["timeline"],
			Description:  values["description"],
			Features:     values["features"],
			Integrations: values["integrations"],
		}, nil
	case KindSession:
		return SessionFields{
			SessionID: values["sessionId"],
			Page:      values["page"],
			Locale:    values["locale"],
			UserAgent: values["userAgent"],
			Referrer:  values["referrer"],
		}, nil
	default:
		return nil, fmt.Errorf("unknown form kind %q", kind)
	}
}

// Name returns the submitter name for a submission, or "" for kinds without one.
func Name(fields FormFields) string { return fields.Values()["name"] }

// Email returns the submitter email for a submission, or "" for kinds without one.
func Email(fields FormFields) string { return fields.Values()["email"] }

// Company returns the company field for a submission, or "" for kinds without one.
func Company(fields FormFields) string { return fields.Values()["company"] }
