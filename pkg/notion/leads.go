package notion

import (
	"strings"

	"github.com/jomei/notionapi"
)

// Lead database property names.
const (
	PropName     = "Name"
	PropEmail    = "Email"
	PropIndustry = "Industry"
	PropStatus   = "Status"
	PropScore    = "Score"
)

// LeadProperties builds the page properties for one lead row.
// Name is the title property; an empty email is left unset.
func LeadProperties(name, email, industry, status string, score int) notionapi.Properties {
	props := notionapi.Properties{
		PropName: notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: name}},
			},
		},
		PropIndustry: notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: industry}},
			},
		},
		PropStatus: notionapi.StatusProperty{
			Status: notionapi.Status{
				Name: status,
			},
		},
		PropScore: notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(score),
		},
	}
	if email != "" {
		props[PropEmail] = notionapi.EmailProperty{
			Type:  notionapi.PropertyTypeEmail,
			Email: email,
		}
	}
	return props
}

// PageStatus returns the Status of a lead page. Both status and select
// property types are accepted; a missing property yields "".
func PageStatus(p notionapi.Page) string {
	prop, ok := p.Properties[PropStatus]
	if !ok {
		return ""
	}
	switch sp := prop.(type) {
	case *notionapi.StatusProperty:
		return strings.TrimSpace(sp.Status.Name)
	case *notionapi.SelectProperty:
		return strings.TrimSpace(sp.Select.Name)
	}
	return ""
}
