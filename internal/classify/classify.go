// Package classify infers a document category from the name of the source
// folder a file was processed into.
package classify

import "strings"

// Document categories used by the organize-by-worker flow.
const (
	CategoryCertificados = "Certificados"
	Category5Rentas      = "5Rentas"
	CategoryConstancias  = "Constancias"
)

type rule struct {
	substring string
	category  string
}

// Rules are ordered: "trabajo" is a weak catch-all signal and must not
// shadow the more specific matches evaluated before it.
var rules = []rule{
	{"certificad", CategoryCertificados},
	{"5renta", Category5Rentas},
	{"renta", Category5Rentas},
	{"constancia", CategoryConstancias},
	{"trabajo", CategoryCertificados},
}

// FolderCategory returns the category for a source folder name, or "" when
// the folder is not recognized and should be excluded from scanning.
func FolderCategory(folderName string) string {
	lower := strings.ToLower(folderName)
	for _, r := range rules {
		if strings.Contains(lower, r.substring) {
			return r.category
		}
	}
	return ""
}
