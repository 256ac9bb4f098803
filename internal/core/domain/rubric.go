package domain

import (
	"bytes"
	"encoding/json"
)

// Cell is one scorable option within a row.
type Cell struct {
	// Score is the points awarded when this option is chosen.
	Score float64 `json:"score"`

	// Description explains what earns this score.
	Description string `json:"description"`
}

// Row is one scoring criterion.
// Cell order is significant: the index is the option position.
type Row struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cells       []Cell `json:"cells"`
}

// MaxScore returns the largest cell score in the row, or 0 for a row without cells.
func (r Row) MaxScore() float64 {
	var highest float64
	for i, c := range r.Cells {
		if i == 0 || c.Score > highest {
			highest = c.Score
		}
	}
	return highest
}

// HasScore reports whether any cell in the row carries the given score.
func (r Row) HasScore(score float64) bool {
	for _, c := range r.Cells {
		if c.Score == score {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := r
	out.Cells = make([]Cell, len(r.Cells))
	copy(out.Cells, r.Cells)
	return out
}

// MarshalJSON writes cells as an empty array rather than null.
func (r Row) MarshalJSON() ([]byte, error) {
	type plain Row
	p := plain(r)
	if p.Cells == nil {
		p.Cells = []Cell{}
	}
	return json.Marshal(p)
}

// Rubric is an ordered list of scoring rows.
// Row order defines display and grading order.
type Rubric struct {
	Rows []Row
}

// MaxScore returns the sum of every row's maximum.
func (r Rubric) MaxScore() float64 {
	var total float64
	for _, row := range r.Rows {
		total += row.MaxScore()
	}
	return total
}

// Clone returns a deep copy of the rubric.
func (r Rubric) Clone() Rubric {
	out := Rubric{Rows: make([]Row, len(r.Rows))}
	for i, row := range r.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}

// rubricEnvelope is the object shape some older pages wrote.
type rubricEnvelope struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// MarshalJSON writes the canonical shape: a bare array of rows.
func (r Rubric) MarshalJSON() ([]byte, error) {
	rows := r.Rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON accepts either a bare array of rows or an object with a "rows" key.
func (r *Rubric) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env rubricEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return err
		}
		r.Rows = env.Rows
		return nil
	}
	var rows []Row
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return err
	}
	r.Rows = rows
	return nil
}
