package antispam_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/SpamShield/pkg/app/antispam"
	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"github.com/NeuralTrust/SpamShield/pkg/domain/submission"
	"github.com/NeuralTrust/SpamShield/pkg/domain/verdict"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cleantalk"
	cleantalkMocks "github.com/NeuralTrust/SpamShield/pkg/infra/cleantalk/mocks"
	"github.com/NeuralTrust/SpamShield/pkg/infra/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	settings settings.Settings
	err      error
}

func (p staticProvider) Current(context.Context) (settings.Settings, error) {
	return p.settings, p.err
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func contactSubmission(t *testing.T, message string) submission.Context {
	t.Helper()
	sc, err := submission.New(
		submission.TypeContact,
		submission.Sender{Email: "a@b.com"},
		message,
		"",
		submission.Origin{IP: "203.0.113.7", Referer: "https://shop.example/contact"},
	)
	require.NoError(t, err)
	return sc
}

func TestCheckSubmission_NoAPIKeyFailsOpenWithoutCall(t *testing.T) {
	remote := cleantalkMocks.NewClient(t)
	client := antispam.NewSpamCheckClient(newLogger(), staticProvider{}, remote, "prestashop-2.0.0", time.Second)

	v, err := client.CheckSubmission(context.Background(), contactSubmission(t, "anything"), submission.ModeMessage)

	require.NoError(t, err)
	assert.True(t, v.Allow)
	remote.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestCheckSubmission_SettingsErrorFailsOpen(t *testing.T) {
	remote := cleantalkMocks.NewClient(t)
	provider := staticProvider{err: errors.New("db down")}
	client := antispam.NewSpamCheckClient(newLogger(), provider, remote, "prestashop-2.0.0", time.Second)

	v, err := client.CheckSubmission(context.Background(), contactSubmission(t, "hi"), submission.ModeMessage)

	require.NoError(t, err)
	assert.True(t, v.Allow)
}

func TestCheckSubmission_ForwardsRequest(t *testing.T) {
	message := "Exact <message>\n  with   spacing "
	remote := cleantalkMocks.NewClient(t)
	remote.On("Check", mock.Anything, mock.MatchedBy(func(r *cleantalk.Request) bool {
		return r.AuthKey == "K" &&
			r.Agent == "prestashop-2.0.0" &&
			r.MethodName == cleantalk.MethodCheckMessage &&
			r.Message == message &&
			r.SenderEmail == "a@b.com"
	})).Return(&verdict.Verdict{Allow: false, Comment: "Spam detected"}, nil).Once()

	provider := staticProvider{settings: settings.Settings{APIKey: "K"}}
	client := antispam.NewSpamCheckClient(newLogger(), provider, remote, "prestashop-2.0.0", time.Second)

	before := testutil.ToFloat64(prometheus.VerdictsTotal.WithLabelValues("contact", prometheus.OutcomeBlock))
	v, err := client.CheckSubmission(context.Background(), contactSubmission(t, message), submission.ModeMessage)

	require.NoError(t, err)
	assert.False(t, v.Allow)
	assert.Equal(t, "Spam detected", v.Comment)
	after := testutil.ToFloat64(prometheus.VerdictsTotal.WithLabelValues("contact", prometheus.OutcomeBlock))
	assert.Equal(t, before+1, after)
}

func TestCheckSubmission_UserModeUsesNewUserMethod(t *testing.T) {
	remote := cleantalkMocks.NewClient(t)
	remote.On("Check", mock.Anything, mock.MatchedBy(func(r *cleantalk.Request) bool {
		return r.MethodName == cleantalk.MethodCheckNewUser
	})).Return(&verdict.Verdict{Allow: true}, nil).Once()

	provider := staticProvider{settings: settings.Settings{APIKey: "K"}}
	client := antispam.NewSpamCheckClient(newLogger(), provider, remote, "prestashop-2.0.0", time.Second)

	sc, err := submission.New(submission.TypeRegistration, submission.Sender{Email: "a@b.com"}, "", "", submission.Origin{})
	require.NoError(t, err)

	v, err := client.CheckSubmission(context.Background(), sc, submission.ModeUser)
	require.NoError(t, err)
	assert.True(t, v.Allow)
}

func TestCheckSubmission_AppliesTimeout(t *testing.T) {
	remote := cleantalkMocks.NewClient(t)
	remote.On("Check", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, _ *cleantalk.Request) (*verdict.Verdict, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
			return verdict.Allowed(), nil
		}).Once()

	provider := staticProvider{settings: settings.Settings{APIKey: "K"}}
	client := antispam.NewSpamCheckClient(newLogger(), provider, remote, "prestashop-2.0.0", 50*time.Millisecond)

	_, err := client.CheckSubmission(context.Background(), contactSubmission(t, "hi"), submission.ModeMessage)
	require.NoError(t, err)
}

func TestCheckSubmission_SlowRemoteIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{"allow":1}`))
	}))
	defer ts.Close()

	remote := cleantalk.NewClient(newLogger(), ts.Client(), ts.URL)
	provider := staticProvider{settings: settings.Settings{APIKey: "K"}}
	client := antispam.NewSpamCheckClient(newLogger(), provider, remote, "prestashop-2.0.0", 50*time.Millisecond)

	v, err := client.CheckSubmission(context.Background(), contactSubmission(t, "hi"), submission.ModeMessage)

	assert.Nil(t, v)
	assert.True(t, errors.Is(err, verdict.ErrRemoteUnavailable))
}

func TestCheckSubmission_WrapsUnclassifiedErrors(t *testing.T) {
	remote := cleantalkMocks.NewClient(t)
	remote.On("Check", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	provider := staticProvider{settings: settings.Settings{APIKey: "K"}}
	client := antispam.NewSpamCheckClient(newLogger(), provider, remote, "prestashop-2.0.0", time.Second)

	_, err := client.CheckSubmission(context.Background(), contactSubmission(t, "hi"), submission.ModeMessage)
	assert.ErrorIs(t, err, verdict.ErrRemoteUnavailable)
}

func TestCheckSubmission_InvalidMode(t *testing.T) {
	remote := cleantalkMocks.NewClient(t)
	client := antispam.NewSpamCheckClient(newLogger(), staticProvider{}, remote, "a", time.Second)

	_, err := client.CheckSubmission(context.Background(), contactSubmission(t, "hi"), submission.Mode("bogus"))
	assert.Error(t, err)
}
