package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/JuanDluna/biosafe/internal/application/composer"
	"github.com/JuanDluna/biosafe/internal/domain"
	"github.com/JuanDluna/biosafe/internal/infrastructure/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationLog struct{ mock.Mock }

func (m *mockNotificationLog) Put(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type mockPushSender struct{ mock.Mock }

func (m *mockPushSender) Send(ctx context.Context, token string, p sns.Payload) (string, error) {
	args := m.Called(ctx, token, p)
	return args.String(0), args.Error(1)
}

// --- helpers ---

func strp(s string) *string { return &s }

func alertRequest() Request {
	return Request{
		UserID:     "user-1",
		MedicineID: "med-1",
		Message:    composer.Expiration(domain.UrgencyCritical, 5, "med-1", "Amoxicillin"),
		Category:   domain.CategoryExpirationAlert,
		Urgency:    domain.UrgencyCritical,
		Days:       5,
	}
}

func newDelivery(us *mockUserStore, log *mockNotificationLog, push *mockPushSender) Service {
	return NewService(ServiceDeps{UserRepo: us, NotificationRepo: log, PushSender: push})
}

// --- tests ---

func TestSend_HappyPath_RecordsSent(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", FCMToken: strp("arn:token")}, nil)

	push := &mockPushSender{}
	push.On("Send", mock.Anything, "arn:token", mock.MatchedBy(func(p sns.Payload) bool {
		return p.Body == "Amoxicillin vence en 5 días." && p.Data["days_until_expiration"] == "5"
	})).Return("sns-msg-1", nil)

	log := &mockNotificationLog{}
	log.On("Put", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == "user-1" &&
			n.MedicineID == "med-1" &&
			n.Status == domain.StatusSent &&
			n.Category == domain.CategoryExpirationAlert &&
			n.Urgency == "critical" &&
			n.DaysUntilExpiration == 5 &&
			n.NotificationID != "" &&
			!n.Time.IsZero()
	})).Return(nil)

	res := newDelivery(us, log, push).Send(context.Background(), alertRequest())

	assert.Equal(t, Delivered, res.Outcome)
	assert.Equal(t, "sns-msg-1", res.MessageID)
	require.NotNil(t, res.Record)
	us.AssertExpectations(t)
	push.AssertExpectations(t)
	log.AssertExpectations(t)
}

func TestSend_NoToken_SkipsGatewayAndRecord(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "user-1").Return(&domain.User{UserID: "user-1"}, nil)

	push := &mockPushSender{}
	log := &mockNotificationLog{}

	res := newDelivery(us, log, push).Send(context.Background(), alertRequest())

	assert.Equal(t, NoToken, res.Outcome)
	assert.NoError(t, res.Err)
	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	log.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSend_EmptyToken_TreatedAsMissing(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", FCMToken: strp("")}, nil)

	push := &mockPushSender{}
	res := newDelivery(us, &mockNotificationLog{}, push).Send(context.Background(), alertRequest())

	assert.Equal(t, NoToken, res.Outcome)
	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSend_UserNotFound_NoRecipient(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "user-1").Return(nil, domain.ErrNotFound)

	push := &mockPushSender{}
	log := &mockNotificationLog{}

	res := newDelivery(us, log, push).Send(context.Background(), alertRequest())

	assert.Equal(t, NoRecipient, res.Outcome)
	assert.True(t, errors.Is(res.Err, domain.ErrNotFound))
	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	log.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSend_GatewayFailure_NoRecordNoRetry(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", FCMToken: strp("arn:token")}, nil)

	push := &mockPushSender{}
	push.On("Send", mock.Anything, "arn:token", mock.Anything).
		Return("", errors.New("endpoint disabled"))

	log := &mockNotificationLog{}

	res := newDelivery(us, log, push).Send(context.Background(), alertRequest())

	assert.Equal(t, Failed, res.Outcome)
	assert.Error(t, res.Err)
	push.AssertNumberOfCalls(t, "Send", 1)
	log.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSend_RecordWriteFailure_StillDelivered(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", FCMToken: strp("arn:token")}, nil)

	push := &mockPushSender{}
	push.On("Send", mock.Anything, "arn:token", mock.Anything).Return("sns-msg-1", nil)

	log := &mockNotificationLog{}
	log.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo throttled"))

	res := newDelivery(us, log, push).Send(context.Background(), alertRequest())

	// The push went out; a lost audit record does not fail the delivery.
	assert.Equal(t, Delivered, res.Outcome)
	assert.Equal(t, "sns-msg-1", res.MessageID)
}

func TestSend_DosageReminder_NoUrgencyRecorded(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", FCMToken: strp("arn:token")}, nil)

	push := &mockPushSender{}
	push.On("Send", mock.Anything, "arn:token", mock.Anything).Return("sns-msg-2", nil)

	log := &mockNotificationLog{}
	log.On("Put", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Category == domain.CategoryDosageReminder && n.Urgency == ""
	})).Return(nil)

	req := Request{
		UserID:     "user-1",
		MedicineID: "med-1",
		Message:    composer.DosageReminder("med-1", "Amoxicillin", "500mg"),
		Category:   domain.CategoryDosageReminder,
	}
	res := newDelivery(us, log, push).Send(context.Background(), req)

	assert.Equal(t, Delivered, res.Outcome)
	log.AssertExpectations(t)
}
