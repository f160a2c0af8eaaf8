// Package domain holds DTOs and ports for the discovery engine
package domain

// Category is the closed set of service categories the marketplace sells
type Category string

// Known categories. The set is closed; new values require a coordinated
// inventory change, so there is no parse-with-default here
const (
	CategoryMassage     Category = "MASSAGE"
	CategoryAcupuncture Category = "ACUPUNCTURE"
	CategoryNails       Category = "NAILS"
	CategoryHair        Category = "HAIR"
	CategoryFacialsSkin Category = "FACIALS_AND_SKIN"
	CategoryLashesBrows Category = "LASHES_AND_BROWS"
)

// ValidCategory reports whether s is one of the known categories
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryMassage, CategoryAcupuncture, CategoryNails,
		CategoryHair, CategoryFacialsSkin, CategoryLashesBrows:
		return true
	}
	return false
}
