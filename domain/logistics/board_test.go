package logistics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/domain/shared"
)

func createTestBoard(t *testing.T) (*Board, Card) {
	t.Helper()
	card := Card{SaleID: uuid.New(), SaleNumber: "S-0001", Stage: StagePicking, ItemCount: 3}
	board := NewBoard([]Card{
		{SaleID: uuid.New(), SaleNumber: "S-0002", Stage: StageConfirmed},
		card,
		{SaleID: uuid.New(), SaleNumber: "S-0003", Stage: StageDispatched},
	})
	require.Equal(t, 3, board.CardCount())
	return board, card
}

func TestStageAdvance(t *testing.T) {
	assert.True(t, StageConfirmed.CanAdvanceTo(StagePicking))
	assert.True(t, StagePicking.CanAdvanceTo(StagePacking))
	assert.True(t, StagePacking.CanAdvanceTo(StageDispatched))
	assert.False(t, StageConfirmed.CanAdvanceTo(StagePacking))
	assert.False(t, StagePacking.CanAdvanceTo(StagePicking))
	assert.False(t, StageDispatched.CanAdvanceTo(StageConfirmed))
	assert.Equal(t, Stage(""), StageDispatched.Next())
}

func TestNewBoardGroupsByStage(t *testing.T) {
	board, card := createTestBoard(t)

	assert.Len(t, board.Columns[StageConfirmed], 1)
	assert.Len(t, board.Columns[StagePicking], 1)
	assert.Len(t, board.Columns[StagePacking], 0)
	assert.Len(t, board.Columns[StageDispatched], 1)

	got, stage, ok := board.Find(card.SaleID)
	require.True(t, ok)
	assert.Equal(t, StagePicking, stage)
	assert.Equal(t, card.SaleNumber, got.SaleNumber)
}

func TestNewBoardDropsUnknownStages(t *testing.T) {
	board := NewBoard([]Card{{SaleID: uuid.New(), Stage: Stage("DELIVERED")}})
	assert.Equal(t, 0, board.CardCount())
}

func TestValidateMove(t *testing.T) {
	board, card := createTestBoard(t)

	assert.NoError(t, board.ValidateMove(card.SaleID, StagePacking))
	assert.ErrorIs(t, board.ValidateMove(card.SaleID, StageDispatched), shared.ErrInvalidState)
	assert.Error(t, board.ValidateMove(uuid.New(), StagePacking))
	assert.Error(t, board.ValidateMove(card.SaleID, Stage("UNKNOWN")))
}
