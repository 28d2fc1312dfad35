package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"superagent/internal/models/chat_models"
	"superagent/pkg/utils"
)

func TestDisabledSheetRepository(t *testing.T) {
	repo := NewDisabledSheetRepository()
	ctx := context.Background()

	assert.NoError(t, repo.EnsureHeader(ctx))

	row, err := repo.AppendRow(ctx, chat_models.CompletionRecord{Name: "Alice"})
	assert.ErrorIs(t, err, utils.ErrSheetDisabled)
	assert.Zero(t, row)

	assert.ErrorIs(t, repo.MarkNotified(ctx, 2, time.Now()), utils.ErrSheetDisabled)
}
