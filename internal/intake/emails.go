package intake

import (
	"strings"

	"github.com/sells-group/leadflow/internal/model"
)

// ParseEmails splits a comma-separated address list into leads. Tokens are
// trimmed and blanks dropped; addresses are not validated.
func ParseEmails(text string) []model.Lead {
	var leads []model.Lead
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		leads = append(leads, model.NewLead("", tok, "", "", 0))
	}
	if leads == nil {
		return []model.Lead{}
	}
	return leads
}
