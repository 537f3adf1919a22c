// Package i18n holds the French and English message tables.
// French is the default language.
package i18n

import (
	"golang.org/x/text/language"
)

const (
	FR = "fr"
	EN = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.French, language.English})

var messages = map[string]map[string]string{
	FR: {
		"required":                 "Champ requis",
		"invalid_choice":           "Valeur non permise",
		"invalid_date":             "Date invalide",
		"invalid_id":               "Sélection invalide",
		"invalid_item_type":        "Type d'article invalide",
		"item_not_found":           "Cet article n'existe pas",
		"quantity_min":             "La quantité doit être un entier supérieur ou égal à 1",
		"break_time_invalid":       "La pause doit être un nombre positif",
		"end_before_start":         "L'heure de fin doit être après l'heure de début",
		"no_items":                 "Ajoutez au moins un article",
		"number_used":              "Ce numéro de facture est déjà utilisé",
		"validation_failed":        "Veuillez corriger les champs en erreur",
		"unauthenticated":          "Vous devez être connecté",
		"duplicate_invoice_number": "Une facture avec ce numéro existe déjà",
		"data_validation_failed":   "La validation des données a échoué",
		"server_error":             "Erreur du serveur, veuillez réessayer",
		"invalid_items":            "Certains articles sont invalides",
		"not_found":                "Ressource introuvable",
		"forbidden":                "Accès refusé",
		"business_not_found":       "Cette entreprise n'existe pas",
	},
	EN: {
		"required":                 "Required",
		"invalid_choice":           "Value not allowed",
		"invalid_date":             "Invalid date",
		"invalid_id":               "Invalid selection",
		"invalid_item_type":        "Invalid item type",
		"item_not_found":           "This item does not exist",
		"quantity_min":             "Quantity must be a whole number of at least 1",
		"break_time_invalid":       "Break must be a positive number",
		"end_before_start":         "End time must be after start time",
		"no_items":                 "Add at least one item",
		"number_used":              "This invoice number is already used",
		"validation_failed":        "Please fix the fields in error",
		"unauthenticated":          "You must be signed in",
		"duplicate_invoice_number": "An invoice with this number already exists",
		"data_validation_failed":   "Data validation failed",
		"server_error":             "Server error, please try again",
		"invalid_items":            "Some items are invalid",
		"not_found":                "Resource not found",
		"forbidden":                "Access denied",
		"business_not_found":       "This business does not exist",
	},
}

// DetectLanguage picks fr or en from an Accept-Language header, fr when nothing matches
func DetectLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return FR
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return FR
	}
	if index == 1 {
		return EN
	}
	return FR
}

// Supported reports whether lang has a message table
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// T translates code, unknown languages use French and unknown codes are returned as is
func T(lang, code string) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[FR]
	}
	if msg, ok := table[code]; ok {
		return msg
	}
	return code
}
