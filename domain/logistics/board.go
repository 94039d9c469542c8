// Package logistics models the four-column picking/packing board.
package logistics

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/console/domain/shared"
	"github.com/erp/console/domain/trade"
)

// Stage is one column of the logistics board
type Stage string

const (
	StageConfirmed  Stage = "CONFIRMED"
	StagePicking    Stage = "PICKING"
	StagePacking    Stage = "PACKING"
	StageDispatched Stage = "DISPATCHED"
)

// Stages lists the board columns in order
func Stages() []Stage {
	return []Stage{StageConfirmed, StagePicking, StagePacking, StageDispatched}
}

// IsValid checks if the value is a known Stage
func (s Stage) IsValid() bool {
	switch s {
	case StageConfirmed, StagePicking, StagePacking, StageDispatched:
		return true
	}
	return false
}

// Next returns the following stage, or "" when s is the last column
func (s Stage) Next() Stage {
	switch s {
	case StageConfirmed:
		return StagePicking
	case StagePicking:
		return StagePacking
	case StagePacking:
		return StageDispatched
	}
	return ""
}

// CanAdvanceTo reports whether a card may move from s to target.
// Moves are one step forward only; the server is the final authority.
func (s Stage) CanAdvanceTo(target Stage) bool {
	return s.Next() == target && target != ""
}

// SaleStatus maps the stage onto the sale status it corresponds to
func (s Stage) SaleStatus() trade.SaleStatus {
	switch s {
	case StageConfirmed:
		return trade.SaleStatusConfirmed
	case StagePicking:
		return trade.SaleStatusPicking
	case StagePacking:
		return trade.SaleStatusPacking
	case StageDispatched:
		return trade.SaleStatusDispatched
	}
	return ""
}

// Card is one order on the board
type Card struct {
	SaleID     uuid.UUID `json:"sale_id"`
	SaleNumber string    `json:"sale_number"`
	ClientName string    `json:"client_name"`
	ItemCount  int       `json:"item_count"`
	Stage      Stage     `json:"stage"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Board is a server snapshot of the four columns. A Board value is never
// mutated in place: moves go to the server and the whole board is
// re-fetched, so a failed move leaves the rendered board untouched.
type Board struct {
	Columns   map[Stage][]Card `json:"columns"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// NewBoard builds a board snapshot from a flat card list
func NewBoard(cards []Card) *Board {
	b := &Board{
		Columns:   make(map[Stage][]Card, len(Stages())),
		FetchedAt: time.Now(),
	}
	for _, s := range Stages() {
		b.Columns[s] = nil
	}
	for _, c := range cards {
		if !c.Stage.IsValid() {
			continue
		}
		b.Columns[c.Stage] = append(b.Columns[c.Stage], c)
	}
	return b
}

// Find returns the card for a sale and the column it sits in
func (b *Board) Find(saleID uuid.UUID) (Card, Stage, bool) {
	for _, s := range Stages() {
		for _, c := range b.Columns[s] {
			if c.SaleID == saleID {
				return c, s, true
			}
		}
	}
	return Card{}, "", false
}

// CardCount returns the total number of cards on the board
func (b *Board) CardCount() int {
	n := 0
	for _, s := range Stages() {
		n += len(b.Columns[s])
	}
	return n
}

// ValidateMove checks a proposed move against the client-side stage rules
// before it is sent to the server
func (b *Board) ValidateMove(saleID uuid.UUID, target Stage) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Unknown board stage")
	}
	_, from, ok := b.Find(saleID)
	if !ok {
		return shared.NewDomainError("CARD_NOT_FOUND", "Order is not on the board")
	}
	if !from.CanAdvanceTo(target) {
		return shared.ErrInvalidState
	}
	return nil
}
