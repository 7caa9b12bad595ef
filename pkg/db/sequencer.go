package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/atlaspath/nmsdex/models"
)

// Sequencer hands out sequential per-group item ids ("raw1", "tech42", ...).
// It is owned by the Store and seeded from the ids already present, so a
// re-run continues existing sequences instead of colliding with them.
type Sequencer struct {
	next map[models.Group]int
}

func newSequencer() *Sequencer {
	return &Sequencer{next: make(map[models.Group]int)}
}

// loadSequencer seeds counters from the highest numeric suffix stored per
// group.
func loadSequencer(sqlDB *sql.DB) (*Sequencer, error) {
	seq := newSequencer()

	rows, err := sqlDB.Query("SELECT id, group_name FROM items")
	if err != nil {
		return nil, fmt.Errorf("failed to scan existing ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, groupName string
		if err := rows.Scan(&id, &groupName); err != nil {
			return nil, err
		}
		group := models.Group(groupName)
		n := suffixNumber(id, group.Prefix())
		if n > seq.next[group] {
			seq.next[group] = n
		}
	}
	return seq, rows.Err()
}

// NextID returns the next sequential id for the group.
func (q *Sequencer) NextID(group models.Group) string {
	q.next[group]++
	return group.Prefix() + strconv.Itoa(q.next[group])
}

func suffixNumber(id, prefix string) int {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return n
}

// NextID asks the store-owned sequencer for a fresh id.
func (s *Store) NextID(group models.Group) string {
	return s.seq.NextID(group)
}
