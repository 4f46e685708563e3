package domain

import "strings"

// Category is derived from the domain designations, it is never persisted.
type Category string

const (
	CategoryTechnical Category = "TECHNICAL"
	CategorySecurity  Category = "SECURITY"
	CategoryGeneral   Category = "GENERAL"
)

// Domain is a top-level budget classification category with a trilingual
// designation.
type Domain struct {
	ID            int64
	DesignationAr string
	DesignationEn string
	DesignationFr string
}

var technicalKeywords = []string{
	"technic", "technique", "equipment", "equipement", "équipement",
	"informat", "maintenance", "engineering", "génie",
}

var securityKeywords = []string{
	"secur", "sécur", "defense", "défense", "protection", "surveillance",
	"armament", "armement",
}

// Category classifies the domain by keyword matching on the English and
// French designations. Security keywords win over technical ones.
func (d Domain) Category() Category {
	text := strings.ToLower(d.DesignationEn + " " + d.DesignationFr)
	for _, kw := range securityKeywords {
		if strings.Contains(text, kw) {
			return CategorySecurity
		}
	}
	for _, kw := range technicalKeywords {
		if strings.Contains(text, kw) {
			return CategoryTechnical
		}
	}
	return CategoryGeneral
}

// ParseCategory maps a path segment like "technical" to a Category.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToUpper(s) {
	case string(CategoryTechnical):
		return CategoryTechnical, true
	case string(CategorySecurity):
		return CategorySecurity, true
	case string(CategoryGeneral):
		return CategoryGeneral, true
	}
	return "", false
}
