package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/JuanDluna/biosafe/internal/application/delivery"
	"github.com/JuanDluna/biosafe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDelivery struct{ mock.Mock }

func (m *mockDelivery) Send(ctx context.Context, req delivery.Request) delivery.Result {
	args := m.Called(ctx, req)
	return args.Get(0).(delivery.Result)
}

func baseReq() domain.DosageReminderRequest {
	return domain.DosageReminderRequest{
		MedicineID:   "med-1",
		MedicineName: "Amoxicillin",
		DosageAmount: "500mg",
	}
}

func TestSend_HappyPath(t *testing.T) {
	d := &mockDelivery{}
	d.On("Send", mock.Anything, mock.MatchedBy(func(req delivery.Request) bool {
		return req.UserID == "user-1" &&
			req.Category == domain.CategoryDosageReminder &&
			req.Message.Body == "Es hora de tomar: 500mg de Amoxicillin"
	})).Return(delivery.Result{Outcome: delivery.Delivered, MessageID: "sns-msg-1"})

	ack, err := NewService(d).Send(context.Background(), "user-1", baseReq())

	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, "sns-msg-1", ack.MessageID)
	d.AssertExpectations(t)
}

func TestSend_UserNotFound(t *testing.T) {
	d := &mockDelivery{}
	d.On("Send", mock.Anything, mock.Anything).
		Return(delivery.Result{Outcome: delivery.NoRecipient, Err: domain.ErrNotFound})

	_, err := NewService(d).Send(context.Background(), "user-1", baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSend_NoDeviceToken_FailedPrecondition(t *testing.T) {
	d := &mockDelivery{}
	d.On("Send", mock.Anything, mock.Anything).
		Return(delivery.Result{Outcome: delivery.NoToken})

	_, err := NewService(d).Send(context.Background(), "user-1", baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFailedPrecondition))
}

func TestSend_GatewayFailure_SurfacedToCaller(t *testing.T) {
	cause := errors.New("endpoint disabled")
	d := &mockDelivery{}
	d.On("Send", mock.Anything, mock.Anything).
		Return(delivery.Result{Outcome: delivery.Failed, Err: cause})

	_, err := NewService(d).Send(context.Background(), "user-1", baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
}
