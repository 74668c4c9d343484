package importexport

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/moolen/fmea/internal/models"
)

// idNamespace scopes the name-based UUIDs generated for worksheet entities.
var idNamespace = uuid.MustParse("5b0e7c1d-3f9a-4e62-9c4b-2a8d6f1e0b73")

// AssignIDs gives every id-less entity of the structure tree a UUID and
// returns how many ids were assigned. The UUID is derived from the
// entity's parent id, position and text, so loading the same document
// twice yields the same ids. Links are left alone: the normalizer
// reconnects text-only legs to the new ids.
func AssignIDs(ws *models.Worksheet) int {
	n := 0
	assign := func(id *string, parent, kind string, pos int, text string) {
		if *id != "" {
			return
		}
		name := strings.Join([]string{parent, kind, strconv.Itoa(pos), text}, "\x00")
		*id = uuid.NewSHA1(idNamespace, []byte(name)).String()
		n++
	}

	assign(&ws.Product.ID, "", "product", 0, ws.Product.Name)
	root := ws.Product.ID
	for i := range ws.Product.Scopes {
		s := &ws.Product.Scopes[i]
		assign(&s.ID, root, "scope", i, s.Name)
		for j := range s.Requirements {
			assign(&s.Requirements[j].ID, s.ID, "requirement", j, s.Requirements[j].Text)
		}
	}
	for i := range ws.Product.FailureEffects {
		fe := &ws.Product.FailureEffects[i]
		assign(&fe.ID, root, "effect", i, fe.Text)
	}
	for i := range ws.Processes {
		p := &ws.Processes[i]
		assign(&p.ID, root, "process", i, p.Label())
		for j := range p.FailureModes {
			assign(&p.FailureModes[j].ID, p.ID, "mode", j, p.FailureModes[j].Text)
		}
		for j := range p.WorkElements {
			we := &p.WorkElements[j]
			assign(&we.ID, p.ID, "element", j, we.Name)
			for k := range we.FailureCauses {
				assign(&we.FailureCauses[k].ID, we.ID, "cause", k, we.FailureCauses[k].Text)
			}
		}
	}
	return n
}
