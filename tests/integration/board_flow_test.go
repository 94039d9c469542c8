package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/domain/logistics"
)

func TestBoardMoveAndReload(t *testing.T) {
	p := NewPlatform(t)
	c := NewConsole(t, p)
	ctx := context.Background()

	_, err := c.Login(ctx, "cashier@example.com", "secret")
	require.NoError(t, err)

	saleID := p.PlaceOrder(logistics.StageConfirmed)

	board, err := c.API.Logistics.GetBoard(ctx, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, 1, board.CardCount())
	_, stage, ok := board.Find(saleID)
	require.True(t, ok)
	assert.Equal(t, logistics.StageConfirmed, stage)

	require.NoError(t, board.ValidateMove(saleID, logistics.StagePicking))
	require.NoError(t, c.API.Logistics.MoveCard(ctx, saleID, logistics.StagePicking))

	// The move never touches the local snapshot; a reload shows it.
	_, stage, _ = board.Find(saleID)
	assert.Equal(t, logistics.StageConfirmed, stage)

	board, err = c.API.Logistics.GetBoard(ctx, uuid.Nil)
	require.NoError(t, err)
	_, stage, ok = board.Find(saleID)
	require.True(t, ok)
	assert.Equal(t, logistics.StagePicking, stage)
}

func TestBoardSkipAheadRejected(t *testing.T) {
	p := NewPlatform(t)
	c := NewConsole(t, p)
	ctx := context.Background()

	_, err := c.Login(ctx, "cashier@example.com", "secret")
	require.NoError(t, err)

	saleID := p.PlaceOrder(logistics.StageConfirmed)

	board, err := c.API.Logistics.GetBoard(ctx, uuid.Nil)
	require.NoError(t, err)

	// Client-side rule catches the two-column jump before any request.
	err = board.ValidateMove(saleID, logistics.StagePacking)
	require.Error(t, err)

	// The server enforces the same rule for requests sent anyway.
	err = c.API.Logistics.MoveCard(ctx, saleID, logistics.StagePacking)
	require.Error(t, err)
}

func TestBoardFailedMoveLeavesSnapshotIntact(t *testing.T) {
	p := NewPlatform(t)
	c := NewConsole(t, p)
	ctx := context.Background()

	_, err := c.Login(ctx, "cashier@example.com", "secret")
	require.NoError(t, err)

	saleID := p.PlaceOrder(logistics.StagePicking)
	board, err := c.API.Logistics.GetBoard(ctx, uuid.Nil)
	require.NoError(t, err)

	p.mu.Lock()
	p.RejectMoves = true
	p.mu.Unlock()

	err = c.API.Logistics.MoveCard(ctx, saleID, logistics.StagePacking)
	require.Error(t, err)

	_, stage, ok := board.Find(saleID)
	require.True(t, ok)
	assert.Equal(t, logistics.StagePicking, stage)

	reloaded, err := c.API.Logistics.GetBoard(ctx, uuid.Nil)
	require.NoError(t, err)
	_, stage, _ = reloaded.Find(saleID)
	assert.Equal(t, logistics.StagePicking, stage, "server state unchanged after rejected move")
}
