package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port/mocks"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := n.Notify(context.Background(), domain.Notification{
		UserID:   uuid.New(),
		Role:     domain.RoleClient,
		Title:    "Quote received",
		Category: domain.CategoryQuote,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"category":"quote"`)
	assert.Contains(t, buf.String(), `"title":"Quote received"`)
}

func TestFanoutJoinsErrors(t *testing.T) {
	boom := errors.New("smtp down")
	ok := mocks.NewMockNotifier(t)
	failing := mocks.NewMockNotifier(t)
	ok.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Once()
	failing.EXPECT().Notify(mock.Anything, mock.Anything).Return(boom).Once()

	err := Fanout{failing, ok}.Notify(context.Background(), domain.Notification{UserID: uuid.New()})
	assert.ErrorIs(t, err, boom)
}
