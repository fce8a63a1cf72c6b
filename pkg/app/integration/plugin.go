// Package integration binds the spam check to the storefront extension points.
package integration

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/SpamShield/pkg/app/antispam"
	"github.com/NeuralTrust/SpamShield/pkg/app/blockpage"
	"github.com/NeuralTrust/SpamShield/pkg/domain/order"
	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"github.com/NeuralTrust/SpamShield/pkg/domain/submission"
	"github.com/NeuralTrust/SpamShield/pkg/domain/verdict"
	"github.com/sirupsen/logrus"
)

// UnavailableMessage is shown when the verdict service is down and the policy is fail-closed.
const UnavailableMessage = "Spam protection is temporarily unavailable. Please try again later."

//go:generate mockery --name=Plugin --dir=. --output=./mocks --filename=plugin_mock.go --case=underscore --with-expecter
type Plugin interface {
	SubmitAccountBefore(ctx context.Context, req *Request) error
	FrontControllerInitAfter(ctx context.Context, req *Request) error
	ValidateOrder(ctx context.Context, o *order.Order, req *Request) error
	NewsletterRegistrationBefore(ctx context.Context, email string, req *Request, expectsHookError bool) (string, error)
	DisplayHeader(ctx context.Context) string
}

type Options struct {
	FailOpenOnUnavailable bool
}

type plugin struct {
	logger   *logrus.Logger
	checker  antispam.SpamCheckClient
	renderer blockpage.Renderer
	orders   order.StateChanger
	settings settings.Provider
	options  Options
}

func NewPlugin(
	logger *logrus.Logger,
	checker antispam.SpamCheckClient,
	renderer blockpage.Renderer,
	orders order.StateChanger,
	provider settings.Provider,
	options Options,
) Plugin {
	return &plugin{
		logger:   logger,
		checker:  checker,
		renderer: renderer,
		orders:   orders,
		settings: provider,
		options:  options,
	}
}

func (p *plugin) SubmitAccountBefore(ctx context.Context, req *Request) error {
	sc, err := submission.New(
		submission.TypeRegistration,
		submission.Sender{
			Email:     req.Value("email"),
			Nickname:  req.Value("nickname"),
			FirstName: req.Value("firstname"),
			LastName:  req.Value("lastname"),
		},
		req.Value("message"),
		req.EventToken(),
		origin(req),
	)
	if err != nil {
		return err
	}
	v, err := p.check(ctx, sc, submission.ModeUser)
	if err != nil {
		return err
	}
	if v.Blocked() {
		return p.block(v.Comment, req.Referer)
	}
	return nil
}

func (p *plugin) FrontControllerInitAfter(ctx context.Context, req *Request) error {
	if req.Has(FieldSubmitMessage) && req.Controller == ControllerContact {
		sc, err := submission.New(
			submission.TypeContact,
			submission.Sender{Email: req.Value("from")},
			req.Value("message"),
			req.EventToken(),
			origin(req),
		)
		if err != nil {
			return err
		}
		v, err := p.check(ctx, sc, submission.ModeMessage)
		if err != nil {
			return err
		}
		if v.Blocked() {
			return p.block(v.Comment, req.Referer)
		}
	}

	if req.Controller == ControllerOrder && req.Has("id_gender") && req.Has("firstname") && req.Has("lastname") {
		return p.SubmitAccountBefore(ctx, req)
	}
	return nil
}

// ValidateOrder checks orders that have not entered any state yet. A blocked
// order is canceled before the block page is produced.
func (p *plugin) ValidateOrder(ctx context.Context, o *order.Order, req *Request) error {
	if o == nil || !o.IsNew() {
		return nil
	}
	sc, err := submission.New(
		submission.TypeOrder,
		submission.Sender{
			Email:     o.CustomerEmail,
			FirstName: o.FirstName,
			LastName:  o.LastName,
		},
		o.Note,
		req.EventToken(),
		origin(req),
	)
	if err != nil {
		return err
	}
	v, err := p.check(ctx, sc, submission.ModeMessage)
	if err != nil {
		return err
	}
	if !v.Blocked() {
		return nil
	}
	if err := p.orders.ChangeState(ctx, o, order.StateCanceled); err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", o.ID, err)
	}
	p.logger.WithField("order_id", o.ID.String()).Info("order canceled by spam check")
	return p.block(v.Comment, req.Referer)
}

// NewsletterRegistrationBefore returns the verdict comment as a hook error
// when expectsHookError is set, and a *BlockedError otherwise.
func (p *plugin) NewsletterRegistrationBefore(
	ctx context.Context,
	email string,
	req *Request,
	expectsHookError bool,
) (string, error) {
	sc, err := submission.New(
		submission.TypeNewsletter,
		submission.Sender{Email: email},
		"",
		req.EventToken(),
		origin(req),
	)
	if err != nil {
		return "", err
	}
	v, err := p.check(ctx, sc, submission.ModeMessage)
	if err != nil {
		return "", err
	}
	if !v.Blocked() {
		return "", nil
	}
	if expectsHookError {
		return v.Comment, nil
	}
	return "", p.block(v.Comment, req.Referer)
}

func (p *plugin) DisplayHeader(ctx context.Context) string {
	current, err := p.settings.Current(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("failed to read settings for header")
		return ""
	}
	return current.BotDetectorScript()
}

// check applies the unavailable policy. With fail-closed, a failure becomes
// a blocking verdict carrying UnavailableMessage, so callers treat it like
// any other block (orders are canceled, hook errors are returned).
func (p *plugin) check(ctx context.Context, sc submission.Context, mode submission.Mode) (*verdict.Verdict, error) {
	v, err := p.checker.CheckSubmission(ctx, sc, mode)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, verdict.ErrRemoteUnavailable) {
		return nil, err
	}
	entry := p.logger.WithError(err).WithField("type", sc.Type)
	if p.options.FailOpenOnUnavailable {
		entry.Warn("verdict service unavailable, letting submission through")
		return verdict.Allowed(), nil
	}
	entry.Warn("verdict service unavailable, blocking submission")
	return &verdict.Verdict{Allow: false, Comment: UnavailableMessage}, nil
}

func (p *plugin) block(comment, referer string) error {
	page, err := p.renderer.Render(comment, referer)
	if err != nil {
		return err
	}
	return &BlockedError{Comment: comment, Page: page}
}

func origin(req *Request) submission.Origin {
	if req == nil {
		return submission.Origin{}
	}
	return submission.Origin{
		Referer:       req.Referer,
		IP:            req.IP,
		XForwardedFor: req.XForwardedFor,
		XRealIP:       req.XRealIP,
		UserAgent:     req.UserAgent,
	}
}
