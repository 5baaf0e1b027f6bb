package dashboard

import (
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/prefs"
)

type cardMeta struct {
	Label string
	Money bool
}

var cardMetas = map[string]cardMeta{
	"revenue":          {"Tushum", true},
	"expected_revenue": {"Kutilayotgan tushum", true},
	"debt":             {"Qarzdorlik", true},
	"discounts":        {"Chegirmalar", true},
	"expenses":         {"Xarajatlar", true},
	"teacher_salaries": {"O'qituvchi maoshlari", true},
	"net_profit":       {"Sof foyda", true},
	"new_students":     {"Yangi o'quvchilar", false},
	"active_students":  {"Faol o'quvchilar", false},
	"stopped_students": {"To'xtatganlar", false},
	"total_students":   {"Jami o'quvchilar", false},
	"total_groups":     {"Guruhlar", false},
	"total_teachers":   {"O'qituvchilar", false},
	"total_revenue":    {"Jami tushum", true},
	"total_expenses":   {"Jami xarajat", true},
	"total_profit":     {"Jami foyda", true},
}

// Card is one stat tile as the template draws it.
type Card struct {
	ID      string
	Board   string
	Label   string
	Value   float64
	Money   bool
	Missing bool
	Hidden  bool
	First   bool
	Last    bool
}

// Cards lays out stats in the user's order. Hidden cards are dropped unless
// editing, when they are kept and marked.
func Cards(b prefs.Board, l prefs.Layout, stats models.DashboardStats, editing bool) []Card {
	ids := l.Visible()
	if editing {
		ids = l.Order
	}
	out := make([]Card, 0, len(ids))
	for i, id := range ids {
		meta, ok := cardMetas[id]
		if !ok {
			meta = cardMeta{Label: id}
		}
		v, has := stats.Cards[id]
		out = append(out, Card{
			ID:      id,
			Board:   b.Name,
			Label:   meta.Label,
			Value:   v,
			Money:   meta.Money,
			Missing: !has,
			Hidden:  l.IsHidden(id),
			First:   i == 0,
			Last:    i == len(ids)-1,
		})
	}
	return out
}
