package model

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/nscp"
)

// PsiNone selects no ψ coefficient: the action enters with its factor only.
const PsiNone = -1

// Term weights one action inside a ponderation.
type Term struct {
	Action ActionID
	Factor float64
	Psi    int // PsiNone, 0, 1 or 2
}

// Ponderation is a named weighted combination of actions.
type Ponderation struct {
	Name  string
	Terms []Term
}

// Coefficient returns the factor applied to the action of t, including ψ.
func (m *Model) Coefficient(t Term) (float64, error) {
	a, err := m.Action(t.Action)
	if err != nil {
		return 0, err
	}
	switch {
	case t.Psi == PsiNone:
		return t.Factor, nil
	case t.Psi >= 0 && t.Psi < len(a.Psi):
		return t.Factor * a.Psi[t.Psi], nil
	}
	return 0, fmt.Errorf("%w: psi selector %d", ErrInvalidArgument, t.Psi)
}

// ActionPonderations returns one unit ponderation per action.
func (m *Model) ActionPonderations() []Ponderation {
	out := make([]Ponderation, len(m.actions))
	for i, a := range m.actions {
		out[i] = Ponderation{Name: a.Name, Terms: []Term{{Action: a.ID, Factor: 1, Psi: PsiNone}}}
	}
	return out
}

// Ponderations builds one ponderation per load combination from the
// category of every action. Combinations that select no action are skipped.
func (m *Model) Ponderations(combos []nscp.LoadCombination) []Ponderation {
	var out []Ponderation
	for _, lc := range combos {
		p := Ponderation{Name: lc.Name()}
		for _, a := range m.actions {
			if f := lc.Factor(a.Category); f != 0 {
				p.Terms = append(p.Terms, Term{Action: a.ID, Factor: f, Psi: PsiNone})
			}
		}
		if len(p.Terms) > 0 {
			out = append(out, p)
		}
	}
	return out
}
