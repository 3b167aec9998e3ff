package cutlist

import (
	"sort"

	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"
)

// Measurements are the fabrication quantities of one profile.
type Measurements struct {
	Girth        int     `json:"girth"`
	Folds        int     `json:"folds"`
	LinearMetres float64 `json:"linearMetres"`
	AreaM2       float64 `json:"areaM2"`
}

func Measure(p models.Profile) Measurements {
	girth := geometry.Girth(p.Points)
	q := float64(p.Quantity)
	return Measurements{
		Girth:        girth,
		Folds:        max(0, len(p.Points)-2),
		LinearMetres: q * p.LengthMm / 1000,
		AreaM2:       float64(girth) / 1000 * p.LengthMm / 1000 * q,
	}
}

// Entry is one line of the cutting list. Index is the profile's position in
// drawing order.
type Entry struct {
	Index   int            `json:"index"`
	Profile models.Profile `json:"profile"`
	Measurements
}

type MaterialSummary struct {
	Material     string  `json:"material"`
	Profiles     int     `json:"profiles"`
	Pieces       int     `json:"pieces"`
	LinearMetres float64 `json:"linearMetres"`
	AreaM2       float64 `json:"areaM2"`
}

type Totals struct {
	Profiles     int     `json:"profiles"`
	Pieces       int     `json:"pieces"`
	Folds        int     `json:"folds"`
	LinearMetres float64 `json:"linearMetres"`
	AreaM2       float64 `json:"areaM2"`
}

type List struct {
	Entries   []Entry           `json:"entries"`
	Materials []MaterialSummary `json:"materials"`
	Totals    Totals            `json:"totals"`
}

// Build measures every profile and orders them by material, then girth.
// Profiles that compare equal keep their drawing order.
func Build(profiles []models.Profile) List {
	entries := make([]Entry, len(profiles))
	for i, p := range profiles {
		entries[i] = Entry{Index: i, Profile: p, Measurements: Measure(p)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Profile.Material != b.Profile.Material {
			return a.Profile.Material < b.Profile.Material
		}
		return a.Girth < b.Girth
	})

	list := List{Entries: entries}
	for _, e := range entries {
		list.Totals.Profiles++
		list.Totals.Pieces += e.Profile.Quantity
		list.Totals.Folds += e.Folds * e.Profile.Quantity
		list.Totals.LinearMetres += e.LinearMetres
		list.Totals.AreaM2 += e.AreaM2

		// entries are grouped by material, so a new name starts a new summary
		n := len(list.Materials)
		if n == 0 || list.Materials[n-1].Material != e.Profile.Material {
			list.Materials = append(list.Materials, MaterialSummary{Material: e.Profile.Material})
			n++
		}
		s := &list.Materials[n-1]
		s.Profiles++
		s.Pieces += e.Profile.Quantity
		s.LinearMetres += e.LinearMetres
		s.AreaM2 += e.AreaM2
	}
	return list
}
