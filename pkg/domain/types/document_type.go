package types

import "github.com/m-mizutani/goerr/v2"

// DocumentType describes which consumer a reference document was written for
type DocumentType string

const (
	DocumentTypeLessonPlan DocumentType = "lesson-plan"
	DocumentTypeProfile    DocumentType = "profile"
	DocumentTypeBoth       DocumentType = "both"
	DocumentTypeGeneral    DocumentType = "general"
)

// IsValid checks if the document type is valid
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeLessonPlan,
		DocumentTypeProfile,
		DocumentTypeBoth,
		DocumentTypeGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the document type
func (d DocumentType) String() string {
	return string(d)
}

// ParseDocumentType parses a string into a DocumentType
func ParseDocumentType(s string) (DocumentType, error) {
	d := DocumentType(s)
	if !d.IsValid() {
		return "", goerr.New("invalid document type", goerr.V("document_type", s))
	}
	return d, nil
}

// DocumentStatus is the publication state of a reference document
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusPublished DocumentStatus = "published"
)

// IsValid checks if the document status is valid
func (s DocumentStatus) IsValid() bool {
	return s == DocumentStatusDraft || s == DocumentStatusPublished
}

// String returns the string representation of the document status
func (s DocumentStatus) String() string {
	return string(s)
}
